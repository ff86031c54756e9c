package samples

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/abc/internal/gesture"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var tick int
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return s
}

func vertical(n int) gesture.Stroke {
	s := make(gesture.Stroke, n)
	for i := range s {
		s[i] = gesture.Point{X: 50, Y: float64(10 + i*5)}
	}
	return s
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	smp := Sample{Letter: 'I', Stroke: vertical(20), Matched: true, Source: "tui"}
	require.NoError(t, s.Save(ctx, &smp))
	assert.NotEmpty(t, smp.ID)
	assert.False(t, smp.CreatedAt.IsZero())

	got, err := s.Get(ctx, smp.ID)
	require.NoError(t, err)
	assert.Equal(t, smp.ID, got.ID)
	assert.Equal(t, 'I', got.Letter)
	assert.Equal(t, smp.Stroke, got.Stroke)
	assert.True(t, got.Matched)
	assert.Equal(t, "tui", got.Source)
	assert.True(t, smp.CreatedAt.Equal(got.CreatedAt))
}

func TestSaveReplacesExistingID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	smp := Sample{ID: "fixed", Letter: 'O', Stroke: vertical(5)}
	require.NoError(t, s.Save(ctx, &smp))
	smp.Letter = 'C'
	require.NoError(t, s.Save(ctx, &smp))

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 'C', all[0].Letter)
}

func TestSaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	assert.Error(t, s.Save(ctx, &Sample{Letter: '1', Stroke: vertical(3)}))
	assert.Error(t, s.Save(ctx, &Sample{Letter: 'a', Stroke: vertical(3)}))
	assert.Error(t, s.Save(ctx, &Sample{Letter: 'A'}))
}

func TestGetMissing(t *testing.T) {
	_, err := newTestStore(t).Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, l := range "AIAB" {
		require.NoError(t, s.Save(ctx, &Sample{Letter: l, Stroke: vertical(3)}))
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, 'B', all[0].Letter, "newest first")

	as, err := s.List(ctx, 'A')
	require.NoError(t, err)
	require.Len(t, as, 2)
	assert.True(t, as[0].CreatedAt.After(as[1].CreatedAt))

	none, err := s.List(ctx, 'Z')
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	smp := Sample{Letter: 'L', Stroke: vertical(3)}
	require.NoError(t, s.Save(ctx, &smp))
	require.NoError(t, s.Delete(ctx, smp.ID))

	_, err := s.Get(ctx, smp.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, smp.ID), ErrNotFound)
}

func TestCounts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, l := range "OOOCI" {
		require.NoError(t, s.Save(ctx, &Sample{Letter: l, Stroke: vertical(3)}))
	}
	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[rune]int{'O': 3, 'C': 1, 'I': 1}, counts)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, err := s.Import(ctx, []Sample{
		{Letter: 'A', Stroke: vertical(4)},
		{Letter: 'B', Stroke: vertical(4)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// A bad sample rolls back the whole batch.
	_, err = s.Import(ctx, []Sample{
		{Letter: 'C', Stroke: vertical(4)},
		{Letter: 'C'},
	})
	require.Error(t, err)

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[rune]int{'A': 1, 'B': 1}, counts)
}

func TestSampleJSON(t *testing.T) {
	smp := Sample{
		ID:     "abc",
		Letter: 'O',
		Stroke: gesture.Stroke{{X: 1, Y: 2}, {X: 3, Y: 4}},
	}
	data, err := json.Marshal(smp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","letter":"O","stroke":{"x":[1,3],"y":[2,4]},"matched":false}`, string(data))

	var back Sample
	require.NoError(t, json.Unmarshal([]byte(`{"letter":"o","stroke":{"x":[5],"y":[6]}}`), &back))
	assert.Equal(t, 'O', back.Letter)
	assert.Equal(t, gesture.Stroke{{X: 5, Y: 6}}, back.Stroke)

	assert.Error(t, json.Unmarshal([]byte(`{"letter":"AB","stroke":{"x":[],"y":[]}}`), &back))
	assert.Error(t, json.Unmarshal([]byte(`{"letter":"A","stroke":{"x":[1,2],"y":[1]}}`), &back))
}

func TestParseLetter(t *testing.T) {
	for in, want := range map[string]rune{"a": 'A', " Z ": 'Z', "m": 'M'} {
		got, err := ParseLetter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "7", "é", "ab"} {
		_, err := ParseLetter(in)
		assert.Error(t, err, in)
	}
}
