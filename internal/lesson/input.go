package lesson

import (
	"context"
	"io"

	"github.com/f3rmion/abc/internal/gesture"
)

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent is a single mouse or touch event on the drawing surface.
type PointerEvent struct {
	Kind  PointerKind
	Point gesture.Point
}

// PointerInputSource delivers pointer events. Next returns io.EOF when the
// source is exhausted.
type PointerInputSource interface {
	Next(ctx context.Context) (PointerEvent, error)
}

// ReplaySource replays recorded strokes as down, move... and up events.
type ReplaySource struct {
	events []PointerEvent
	pos    int
}

// NewReplaySource builds a source from complete strokes.
func NewReplaySource(strokes ...gesture.Stroke) *ReplaySource {
	var events []PointerEvent
	for _, s := range strokes {
		if len(s) == 0 {
			continue
		}
		events = append(events, PointerEvent{Kind: PointerDown, Point: s[0]})
		for _, p := range s[1:] {
			events = append(events, PointerEvent{Kind: PointerMove, Point: p})
		}
		events = append(events, PointerEvent{Kind: PointerUp, Point: s[len(s)-1]})
	}
	return &ReplaySource{events: events}
}

// Next implements PointerInputSource.
func (r *ReplaySource) Next(ctx context.Context) (PointerEvent, error) {
	if err := ctx.Err(); err != nil {
		return PointerEvent{}, err
	}
	if r.pos >= len(r.events) {
		return PointerEvent{}, io.EOF
	}
	ev := r.events[r.pos]
	r.pos++
	return ev, nil
}

// Tone identifies a feedback sound.
type Tone int

const (
	ToneSuccess Tone = iota
	ToneRetry
)

func (t Tone) String() string {
	if t == ToneSuccess {
		return "success"
	}
	return "retry"
}

// TextToSpeech reads text aloud. Speak blocks until the utterance ends.
type TextToSpeech interface {
	Speak(ctx context.Context, text, lang string, rate float64) error
}

// ToneSynthesizer plays a short feedback sound.
type ToneSynthesizer interface {
	Play(ctx context.Context, tone Tone) error
}
