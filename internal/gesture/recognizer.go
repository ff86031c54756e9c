package gesture

import "unicode"

// DefaultMinPoints is the number of points a stroke needs before it is
// analyzed at all.
const DefaultMinPoints = 15

// Result is the outcome of recognizing one stroke. The zero value is NoMatch.
type Result struct {
	letter rune
}

// NoMatch is the result for rejected, too short and empty strokes.
var NoMatch = Result{}

// Match returns a result carrying the recognized letter.
func Match(letter rune) Result {
	return Result{letter: letter}
}

// Matched reports whether a letter was recognized.
func (r Result) Matched() bool { return r.letter != 0 }

// Letter returns the recognized letter, or 0 for NoMatch.
func (r Result) Letter() rune { return r.letter }

func (r Result) String() string {
	if !r.Matched() {
		return "no match"
	}
	return string(r.letter)
}

// Recognizer dispatches a completed stroke to the classifier of the expected
// letter. It is safe for concurrent use as long as its Rand is.
type Recognizer struct {
	minPoints int
	rng       Rand
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithMinPoints sets the minimum stroke length. Values below 1 become 1.
func WithMinPoints(n int) Option {
	return func(r *Recognizer) {
		if n < 1 {
			n = 1
		}
		r.minPoints = n
	}
}

// WithRand sets the random source of the fallback classifier.
func WithRand(rng Rand) Option {
	return func(r *Recognizer) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// NewRecognizer returns a recognizer with DefaultMinPoints and the global
// random source unless overridden.
func NewRecognizer(opts ...Option) *Recognizer {
	r := &Recognizer{
		minPoints: DefaultMinPoints,
		rng:       globalRand{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MinPoints returns the configured minimum stroke length.
func (r *Recognizer) MinPoints() int { return r.minPoints }

// TooShort reports whether a stroke is rejected by the length gate.
func (r *Recognizer) TooShort(s Stroke) bool { return len(s) < r.minPoints }

// Recognize checks a frozen stroke against the expected letter. It never
// fails: empty, short and unrecognized strokes all return NoMatch, as does
// any expected letter outside A-Z.
func (r *Recognizer) Recognize(s Stroke, expected rune) Result {
	if len(s) == 0 || r.TooShort(s) {
		return NoMatch
	}
	expected = unicode.ToUpper(expected)
	if expected < 'A' || expected > 'Z' {
		return NoMatch
	}
	path := Normalize(s)

	if classify, ok := ClassifierFor(expected); ok {
		if classify(path) {
			return Match(expected)
		}
		return NoMatch
	}
	return fallback(path, expected, r.rng)
}

// OnStrokeComplete is the callback a drawing surface invokes once per
// completed stroke.
func (r *Recognizer) OnStrokeComplete(points []Point, expected rune) Result {
	return r.Recognize(Stroke(points), expected)
}
