package lesson

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/abc/internal/gesture"
)

type fakeSpeech struct {
	texts []string
	langs []string
	err   error
}

func (f *fakeSpeech) Speak(_ context.Context, text, lang string, _ float64) error {
	f.texts = append(f.texts, text)
	f.langs = append(f.langs, lang)
	return f.err
}

type fakeTones struct {
	played []Tone
}

func (f *fakeTones) Play(_ context.Context, tone Tone) error {
	f.played = append(f.played, tone)
	return nil
}

func vertical(n int) gesture.Stroke {
	s := make(gesture.Stroke, n)
	for i := range s {
		s[i] = gesture.Point{X: 50, Y: 10 + float64(i)*10}
	}
	return s
}

func horizontal(n int) gesture.Stroke {
	s := make(gesture.Stroke, n)
	for i := range s {
		s[i] = gesture.Point{X: 10 + float64(i)*10, Y: 50}
	}
	return s
}

func trace(c *Controller, s gesture.Stroke) Outcome {
	c.Press(s[0])
	for _, p := range s[1:] {
		c.Drag(p)
	}
	return c.Release()
}

func testLanguage() Language {
	return Language{
		Letters: map[string]LetterInfo{
			"I": {Pronunciation: "eye", Example: "like Igloo"},
		},
	}
}

func TestController_MatchAdvances(t *testing.T) {
	c := NewController(Options{Language: testLanguage()})
	require.True(t, c.Select('I'))

	out := trace(c, vertical(16))
	assert.Equal(t, OutcomeMatched, out.Kind)
	assert.Equal(t, 'I', out.Expected)
	assert.Equal(t, gesture.Match('I'), out.Result)
	assert.Equal(t, 16, out.Points)
	assert.Equal(t, "Excellent! You traced the letter I!", out.Message)
	assert.Empty(t, out.Spoken, "voice disabled")

	assert.Equal(t, 'J', c.Letter())
	assert.Equal(t, 0, c.Attempts())
	assert.Empty(t, c.Path())
	assert.Equal(t, out.Message, c.Message())
}

func TestController_RetryCountsAttempts(t *testing.T) {
	c := NewController(Options{Language: testLanguage()})
	c.Select('I')

	out := trace(c, horizontal(16))
	assert.Equal(t, OutcomeRetry, out.Kind)
	assert.Equal(t, gesture.NoMatch, out.Result)
	assert.Equal(t, "Try tracing the letter I again. Points traced: 16", out.Message)
	assert.Equal(t, 1, c.Attempts())
	assert.Equal(t, 'I', c.Letter())
	assert.Len(t, c.Path(), 16, "last stroke stays visible until the next one")

	trace(c, vertical(5))
	assert.Equal(t, 2, c.Attempts())

	c.Next()
	assert.Equal(t, 0, c.Attempts())
}

func TestController_TooShort(t *testing.T) {
	c := NewController(Options{Language: testLanguage()})
	out := trace(c, vertical(14))
	assert.Equal(t, OutcomeTooShort, out.Kind)
	assert.Equal(t, 14, out.Points)
	assert.Contains(t, out.Message, "too short")
	assert.Equal(t, 'A', c.Letter())
}

func TestController_CustomMinPoints(t *testing.T) {
	rec := gesture.NewRecognizer(gesture.WithMinPoints(4))
	c := NewController(Options{Recognizer: rec})
	c.Select('I')
	assert.Equal(t, 4, c.MinPoints())
	assert.Equal(t, OutcomeMatched, trace(c, vertical(4)).Kind)
}

func TestController_TracingOffIgnoresInput(t *testing.T) {
	c := NewController(Options{})
	c.SetTracing(false)
	assert.Equal(t, "Tracing mode is off.", c.Message())

	c.Press(gesture.Point{X: 1, Y: 1})
	c.Drag(gesture.Point{X: 2, Y: 2})
	assert.False(t, c.Drawing())
	assert.Empty(t, c.Path())
	assert.Equal(t, OutcomeIgnored, c.Release().Kind)
	assert.Equal(t, 0, c.Attempts())

	c.ToggleTracing()
	assert.True(t, c.Tracing())
	assert.Equal(t, "Trace the letter A with your mouse or finger!", c.Message())
}

func TestController_ReleaseWithoutPress(t *testing.T) {
	c := NewController(Options{})
	c.Drag(gesture.Point{X: 1, Y: 1})
	assert.Empty(t, c.Path())
	assert.Equal(t, OutcomeIgnored, c.Release().Kind)
}

func TestController_NewStrokeDiscardsPrevious(t *testing.T) {
	c := NewController(Options{})
	c.Press(gesture.Point{X: 1, Y: 1})
	c.Drag(gesture.Point{X: 2, Y: 2})
	c.Release()

	c.Press(gesture.Point{X: 9, Y: 9})
	assert.Equal(t, gesture.Stroke{{X: 9, Y: 9}}, c.Path())
}

func TestController_LetterChangeDiscardsPath(t *testing.T) {
	c := NewController(Options{})
	c.Press(gesture.Point{X: 1, Y: 1})
	c.Drag(gesture.Point{X: 2, Y: 2})
	c.Prev()
	assert.Equal(t, 'Z', c.Letter())
	assert.Empty(t, c.Path())
	assert.False(t, c.Drawing())
	assert.Equal(t, OutcomeIgnored, c.Release().Kind)
}

func TestController_LastPoint(t *testing.T) {
	c := NewController(Options{})
	_, ok := c.LastPoint()
	assert.False(t, ok)

	c.Press(gesture.Point{X: 1, Y: 1})
	c.Drag(gesture.Point{X: 2, Y: 3})
	last, ok := c.LastPoint()
	require.True(t, ok)
	assert.Equal(t, gesture.Point{X: 2, Y: 3}, last)

	c.Clear()
	_, ok = c.LastPoint()
	assert.False(t, ok)
}

func TestController_Clear(t *testing.T) {
	c := NewController(Options{})
	c.Press(gesture.Point{X: 1, Y: 1})
	c.Clear()
	assert.Empty(t, c.Path())
	assert.False(t, c.Drawing())
}

func TestController_SelectRejectsNonLetters(t *testing.T) {
	c := NewController(Options{})
	c.Select('D')
	assert.False(t, c.Select('7'))
	assert.Equal(t, 'D', c.Letter())
}

func TestController_Drive(t *testing.T) {
	c := NewController(Options{})
	c.Select('I')
	src := NewReplaySource(horizontal(16), nil, vertical(16), vertical(3))

	outcomes, err := c.Drive(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.Equal(t, OutcomeRetry, outcomes[0].Kind)
	assert.Equal(t, OutcomeMatched, outcomes[1].Kind)
	assert.Equal(t, OutcomeTooShort, outcomes[2].Kind)
	assert.Equal(t, 'J', outcomes[2].Expected)
}

func TestController_DriveStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewController(Options{}).Drive(ctx, NewReplaySource(vertical(16)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestController_AnnounceAndSpeak(t *testing.T) {
	speech := &fakeSpeech{}
	c := NewController(Options{
		Language:     testLanguage(),
		LanguageCode: "en-US",
		VoiceEnabled: true,
		Speech:       speech,
	})
	c.Select('I')
	text := c.Announce()
	assert.Equal(t, "The letter is I. It sounds like eye. like Igloo.", text)
	assert.Equal(t, text, c.Message())

	require.NoError(t, c.Speak(context.Background(), text))
	assert.Equal(t, []string{text}, speech.texts)
	assert.Equal(t, []string{"en-US"}, speech.langs)
	assert.False(t, c.Speaking())
}

func TestController_AnnounceWithoutExample(t *testing.T) {
	c := NewController(Options{})
	c.Select('K')
	assert.Equal(t, "The letter is K. It sounds like K.", c.Announce())
}

func TestController_SpeakDisabled(t *testing.T) {
	speech := &fakeSpeech{}
	c := NewController(Options{Speech: speech})
	require.NoError(t, c.Speak(context.Background(), "hello"))
	assert.Empty(t, speech.texts)
}

func TestController_SpeakError(t *testing.T) {
	speech := &fakeSpeech{err: errors.New("no voice")}
	c := NewController(Options{Speech: speech, VoiceEnabled: true})
	err := c.Speak(context.Background(), "hello")
	assert.ErrorContains(t, err, "no voice")
}

func TestController_Feedback(t *testing.T) {
	speech := &fakeSpeech{}
	tones := &fakeTones{}
	c := NewController(Options{VoiceEnabled: true, Speech: speech, Tones: tones})
	c.Select('I')

	win := trace(c, vertical(16))
	require.NoError(t, c.Feedback(context.Background(), win))
	miss := trace(c, vertical(3))
	require.NoError(t, c.Feedback(context.Background(), miss))

	assert.Equal(t, []Tone{ToneSuccess, ToneRetry}, tones.played)
	assert.Equal(t, []string{"Well done! You got the letter I!"}, speech.texts)
}

func TestController_AutoSpeak(t *testing.T) {
	assert.False(t, NewController(Options{AutoSpeak: true}).AutoSpeak())
	assert.True(t, NewController(Options{AutoSpeak: true, VoiceEnabled: true}).AutoSpeak())
}

func TestLanguage_Phrases(t *testing.T) {
	lang := Language{
		Letters: map[string]LetterInfo{"B": {Pronunciation: "bé", Example: "comme Ballon"}},
		Phrases: Phrases{Intro: "La lettre est {letter}. Elle se prononce {pronunciation}. {example}."},
	}
	assert.Equal(t, "La lettre est B. Elle se prononce bé. comme Ballon.",
		lang.Render(lang.phrase(func(p Phrases) string { return p.Intro }), 'B', 0))
	assert.Equal(t, "Tracing mode is off.",
		lang.Render(lang.phrase(func(p Phrases) string { return p.TracingOff }), 'B', 0))
	assert.Equal(t, LetterInfo{Pronunciation: "Q"}, lang.Info('Q'))
}
