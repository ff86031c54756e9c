package gesture

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognize_Scenarios(t *testing.T) {
	openGap := 2 * math.Asin(0.6)
	rec := NewRecognizer(WithRand(fixedRand(0.99)))

	tests := []struct {
		name   string
		stroke Stroke
		letter rune
		want   Result
	}{
		{"O closed loop", arc(100, 100, 50, 0, 2*math.Pi*0.99, 20), 'O', Match('O')},
		{"O open stroke", arc(100, 100, 50, 0, 2*math.Pi-openGap, 20), 'O', NoMatch},
		{"I vertical line", line(50, 10, 50, 200, 16), 'I', Match('I')},
		{"O too short", arc(100, 100, 50, 0, 2*math.Pi*0.99, 10), 'O', NoMatch},
		{"E straight line", line(0, 0, 300, 150, 30), 'E', NoMatch},
		{"E zigzag", zigzag(20, 10, 50), 'E', Match('E')},
		{"lower case expected letter", line(50, 10, 50, 200, 16), 'i', Match('I')},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rec.Recognize(tc.stroke, tc.letter))
		})
	}
}

func TestRecognize_ShortStrokesNeverMatch(t *testing.T) {
	rec := NewRecognizer(WithRand(fixedRand(0.99)))
	for n := 0; n < DefaultMinPoints; n++ {
		for _, letter := range "ABCDEFGHIJKLMNOPQRSTUVWXYZ" {
			var s Stroke
			if n > 0 {
				s = zigzag(n, 10, 50)
			}
			assert.False(t, rec.Recognize(s, letter).Matched(), "n=%d letter=%c", n, letter)
		}
	}
}

func TestRecognize_DegenerateInputs(t *testing.T) {
	rec := NewRecognizer(WithMinPoints(1), WithRand(fixedRand(0.99)))
	single := Stroke{{X: 5, Y: 5}}
	same := Stroke{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}
	for _, letter := range "ABCDEFGHIJKLMNOPQRSTUVWXYZ?" {
		assert.NotPanics(t, func() {
			assert.Equal(t, NoMatch, rec.Recognize(nil, letter))
			assert.Equal(t, NoMatch, rec.Recognize(single, letter))
			assert.Equal(t, NoMatch, rec.Recognize(same, letter))
		})
	}
}

func TestRecognize_NonLatinLettersNeverMatch(t *testing.T) {
	s := zigzag(20, 10, 50)
	rec := NewRecognizer(WithRand(fixedRand(0.99)))
	require.Equal(t, Match('K'), rec.Recognize(s, 'K'))

	for _, letter := range "?5ßéÉ@[`{ж" {
		assert.Equal(t, NoMatch, rec.Recognize(s, letter), "letter %q", letter)
		assert.Equal(t, NoMatch, rec.OnStrokeComplete(s, letter), "letter %q", letter)
	}
}

func TestRecognize_LowComplexityFallbackIsDeterministic(t *testing.T) {
	straight := line(0, 0, 300, 150, 30)
	bent := join(line(0, 0, 100, 0, 10), line(100, 0, 100, 100, 11))
	require.Equal(t, 0, DirectionChanges(Normalize(straight)))
	require.Equal(t, 1, DirectionChanges(Normalize(bent)))

	for _, draw := range []float64{0, 0.21, 0.5, 0.999} {
		rec := NewRecognizer(WithRand(fixedRand(draw)))
		assert.Equal(t, NoMatch, rec.Recognize(straight, 'E'))
		assert.Equal(t, NoMatch, rec.Recognize(bent, 'E'))
	}
}

func TestRecognize_FallbackDrawThreshold(t *testing.T) {
	s := zigzag(20, 10, 50)
	assert.Equal(t, NoMatch, NewRecognizer(WithRand(fixedRand(0.2))).Recognize(s, 'K'))
	assert.Equal(t, NoMatch, NewRecognizer(WithRand(fixedRand(0.1))).Recognize(s, 'K'))
	assert.Equal(t, Match('K'), NewRecognizer(WithRand(fixedRand(0.2000001))).Recognize(s, 'K'))
}

func TestRecognize_FallbackAcceptsAboutEightyPercent(t *testing.T) {
	rec := NewRecognizer(WithRand(rand.New(rand.NewPCG(7, 11))))
	s := zigzag(20, 10, 50)

	const trials = 1000
	matched := 0
	for i := 0; i < trials; i++ {
		if rec.Recognize(s, 'W').Matched() {
			matched++
		}
	}
	assert.InDelta(t, 0.8, float64(matched)/trials, 0.05)
}

func TestRecognize_DedicatedClassifiersAreIdempotent(t *testing.T) {
	rec := NewRecognizer()
	strokes := []Stroke{
		arc(100, 100, 50, 0, 2*math.Pi*0.99, 20),
		line(50, 10, 50, 200, 16),
		zigzag(25, 10, 50),
		join(line(0, 0, 0, 100, 10), line(0, 100, 100, 100, 11)),
	}
	for _, s := range strokes {
		for _, letter := range DedicatedLetters() {
			first := rec.Recognize(s, letter)
			for i := 0; i < 5; i++ {
				assert.Equal(t, first, rec.Recognize(s, letter))
			}
		}
	}
}

func TestRecognize_DoesNotMutateStroke(t *testing.T) {
	s := zigzag(20, 10, 50)
	before := append(Stroke(nil), s...)
	NewRecognizer().Recognize(s, 'E')
	assert.Equal(t, before, s)
}

func TestWithMinPoints(t *testing.T) {
	assert.Equal(t, DefaultMinPoints, NewRecognizer().MinPoints())
	assert.Equal(t, 5, NewRecognizer(WithMinPoints(5)).MinPoints())
	assert.Equal(t, 1, NewRecognizer(WithMinPoints(0)).MinPoints())
	assert.Equal(t, 1, NewRecognizer(WithMinPoints(-3)).MinPoints())

	rec := NewRecognizer(WithMinPoints(5))
	assert.Equal(t, Match('I'), rec.Recognize(line(50, 10, 50, 200, 6), 'I'))
	assert.True(t, rec.TooShort(line(0, 0, 1, 1, 4)))
}

func TestOnStrokeComplete(t *testing.T) {
	rec := NewRecognizer()
	pts := []Point(line(50, 10, 50, 200, 16))
	assert.Equal(t, Match('I'), rec.OnStrokeComplete(pts, 'I'))
	assert.Equal(t, NoMatch, rec.OnStrokeComplete(nil, 'I'))
}

func TestResult(t *testing.T) {
	assert.False(t, NoMatch.Matched())
	assert.Equal(t, rune(0), NoMatch.Letter())
	assert.Equal(t, "no match", NoMatch.String())

	r := Match('Q')
	assert.True(t, r.Matched())
	assert.Equal(t, 'Q', r.Letter())
	assert.Equal(t, "Q", r.String())
}
