package lesson

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/f3rmion/abc/internal/gesture"
)

// OutcomeKind classifies what happened when a stroke ended.
type OutcomeKind int

const (
	// OutcomeIgnored means no stroke was in progress (tracing off, or no press).
	OutcomeIgnored OutcomeKind = iota
	// OutcomeMatched means the stroke was recognized; the cursor has advanced.
	OutcomeMatched
	// OutcomeRetry means the stroke was long enough but not recognized.
	OutcomeRetry
	// OutcomeTooShort means the stroke had fewer points than the minimum.
	OutcomeTooShort
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMatched:
		return "matched"
	case OutcomeRetry:
		return "retry"
	case OutcomeTooShort:
		return "too_short"
	}
	return "ignored"
}

// Outcome describes the end of one stroke.
type Outcome struct {
	Kind     OutcomeKind
	Expected rune
	Result   gesture.Result
	Points   int
	// Message is the text shown to the child.
	Message string
	// Spoken is what the assistant should say, if anything.
	Spoken string
}

// Options configures a Controller.
type Options struct {
	Recognizer *gesture.Recognizer
	Language   Language
	// LanguageCode is passed to the speech backend, e.g. "fr-FR".
	LanguageCode string
	SpeechRate   float64
	VoiceEnabled bool
	AutoSpeak    bool
	Speech       TextToSpeech
	Tones        ToneSynthesizer
}

// Controller owns the state of one tracing page. It is not safe for
// concurrent use except for Speak and Speaking; hosts serialize the rest.
type Controller struct {
	opts   Options
	rec    *gesture.Recognizer
	cursor Cursor

	tracing  bool
	drawing  bool
	path     gesture.Stroke
	attempts int
	message  string

	speaking atomic.Bool
}

// NewController returns a controller positioned on A with tracing enabled.
func NewController(opts Options) *Controller {
	if opts.Recognizer == nil {
		opts.Recognizer = gesture.NewRecognizer()
	}
	if opts.SpeechRate <= 0 {
		opts.SpeechRate = 1
	}
	c := &Controller{
		opts:    opts,
		rec:     opts.Recognizer,
		tracing: true,
	}
	c.message = opts.Language.phrase(func(p Phrases) string { return p.Greeting })
	return c
}

// Letter returns the letter being practiced.
func (c *Controller) Letter() rune { return c.cursor.Letter() }

// Index returns the cursor position in the alphabet.
func (c *Controller) Index() int { return c.cursor.Index() }

// Attempts counts failed strokes for the current letter.
func (c *Controller) Attempts() int { return c.attempts }

// Message is the latest assistant message.
func (c *Controller) Message() string { return c.message }

// Tracing reports whether strokes are being captured.
func (c *Controller) Tracing() bool { return c.tracing }

// Drawing reports whether the pointer is currently down.
func (c *Controller) Drawing() bool { return c.drawing }

// MinPoints is the recognizer's length gate.
func (c *Controller) MinPoints() int { return c.rec.MinPoints() }

// Language returns the active letter table and phrases.
func (c *Controller) Language() Language { return c.opts.Language }

// AutoSpeak reports whether a new letter should be announced.
func (c *Controller) AutoSpeak() bool { return c.opts.VoiceEnabled && c.opts.AutoSpeak }

// Path returns a copy of the current or last stroke.
func (c *Controller) Path() gesture.Stroke {
	return append(gesture.Stroke(nil), c.path...)
}

// LastPoint returns the newest point of the current or last stroke.
func (c *Controller) LastPoint() (gesture.Point, bool) {
	if len(c.path) == 0 {
		return gesture.Point{}, false
	}
	return c.path[len(c.path)-1], true
}

// SetTracing turns stroke capture on or off. Any stroke in progress is dropped.
func (c *Controller) SetTracing(on bool) {
	c.tracing = on
	c.drawing = false
	c.path = nil
	if on {
		c.message = c.render(func(p Phrases) string { return p.TracingOn }, 0)
	} else {
		c.message = c.render(func(p Phrases) string { return p.TracingOff }, 0)
	}
}

// ToggleTracing flips tracing mode.
func (c *Controller) ToggleTracing() { c.SetTracing(!c.tracing) }

// Press starts a new stroke at p, discarding the previous one.
func (c *Controller) Press(p gesture.Point) {
	if !c.tracing {
		return
	}
	c.drawing = true
	c.path = gesture.Stroke{p}
}

// Drag appends p to the stroke in progress.
func (c *Controller) Drag(p gesture.Point) {
	if !c.tracing || !c.drawing {
		return
	}
	c.path = append(c.path, p)
}

// Release ends the stroke and recognizes it against the current letter.
func (c *Controller) Release() Outcome {
	expected := c.Letter()
	if !c.tracing || !c.drawing {
		return Outcome{Kind: OutcomeIgnored, Expected: expected, Message: c.message}
	}
	c.drawing = false
	stroke := c.path
	n := len(stroke)

	if n == 0 || c.rec.TooShort(stroke) {
		c.attempts++
		c.message = c.render(func(p Phrases) string { return p.TooShort }, n)
		return Outcome{Kind: OutcomeTooShort, Expected: expected, Points: n, Message: c.message}
	}

	result := c.rec.Recognize(stroke, expected)
	if !result.Matched() || result.Letter() != expected {
		c.attempts++
		c.message = c.render(func(p Phrases) string { return p.Retry }, n)
		return Outcome{Kind: OutcomeRetry, Expected: expected, Result: result, Points: n, Message: c.message}
	}

	out := Outcome{
		Kind:     OutcomeMatched,
		Expected: expected,
		Result:   result,
		Points:   n,
		Message:  c.render(func(p Phrases) string { return p.Success }, n),
	}
	if c.opts.VoiceEnabled {
		out.Spoken = c.render(func(p Phrases) string { return p.SuccessSpoken }, n)
	}
	c.advance(c.cursor.Next)
	c.message = out.Message
	return out
}

// Clear drops the current stroke without recognizing it.
func (c *Controller) Clear() {
	c.drawing = false
	c.path = nil
}

// Next moves to the following letter.
func (c *Controller) Next() { c.advance(c.cursor.Next) }

// Prev moves to the previous letter.
func (c *Controller) Prev() { c.advance(c.cursor.Prev) }

// Select jumps to a letter. It reports false for anything outside A-Z.
func (c *Controller) Select(letter rune) bool {
	ok := false
	c.advance(func() { ok = c.cursor.Set(letter) })
	return ok
}

func (c *Controller) advance(move func()) {
	before := c.cursor.Index()
	move()
	c.drawing = false
	c.path = nil
	if c.cursor.Index() != before {
		c.attempts = 0
	}
	if c.tracing {
		c.message = c.render(func(p Phrases) string { return p.TracingOn }, 0)
	}
}

// Handle applies one pointer event. It reports the outcome for PointerUp.
func (c *Controller) Handle(ev PointerEvent) (Outcome, bool) {
	switch ev.Kind {
	case PointerDown:
		c.Press(ev.Point)
	case PointerMove:
		c.Drag(ev.Point)
	case PointerUp:
		return c.Release(), true
	}
	return Outcome{}, false
}

// Drive consumes src until it is exhausted and returns the outcome of every
// completed stroke.
func (c *Controller) Drive(ctx context.Context, src PointerInputSource) ([]Outcome, error) {
	var outcomes []Outcome
	for {
		ev, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return outcomes, nil
		}
		if err != nil {
			return outcomes, fmt.Errorf("reading pointer events: %w", err)
		}
		if out, done := c.Handle(ev); done {
			outcomes = append(outcomes, out)
		}
	}
}

// Announce sets the message to the introduction of the current letter and
// returns the text to speak.
func (c *Controller) Announce() string {
	c.message = c.render(func(p Phrases) string { return p.Intro }, 0)
	return c.message
}

// Speaking reports whether an utterance is in flight.
func (c *Controller) Speaking() bool { return c.speaking.Load() }

// Speak reads text aloud through the configured backend. It is a no-op when
// voice is disabled or no backend is set. Safe to call from another goroutine.
func (c *Controller) Speak(ctx context.Context, text string) error {
	if !c.opts.VoiceEnabled || c.opts.Speech == nil || text == "" {
		return nil
	}
	c.speaking.Store(true)
	defer c.speaking.Store(false)
	if err := c.opts.Speech.Speak(ctx, text, c.opts.LanguageCode, c.opts.SpeechRate); err != nil {
		return fmt.Errorf("speaking: %w", err)
	}
	return nil
}

// Feedback plays the tone for an outcome and speaks its spoken text.
// Safe to call from another goroutine.
func (c *Controller) Feedback(ctx context.Context, out Outcome) error {
	if c.opts.Tones != nil {
		var err error
		switch out.Kind {
		case OutcomeMatched:
			err = c.opts.Tones.Play(ctx, ToneSuccess)
		case OutcomeRetry, OutcomeTooShort:
			err = c.opts.Tones.Play(ctx, ToneRetry)
		}
		if err != nil {
			return fmt.Errorf("playing tone: %w", err)
		}
	}
	return c.Speak(ctx, out.Spoken)
}

func (c *Controller) render(pick func(Phrases) string, points int) string {
	return c.opts.Language.Render(c.opts.Language.phrase(pick), c.Letter(), points)
}
