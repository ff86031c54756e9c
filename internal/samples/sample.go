// Package samples stores labelled strokes in SQLite so the recognizer can be
// replayed against real handwriting.
package samples

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/f3rmion/abc/internal/gesture"
)

// ErrNotFound is returned when no sample has the requested id.
var ErrNotFound = errors.New("sample not found")

// Sample is one recorded attempt at tracing a letter.
type Sample struct {
	ID        string
	Letter    rune
	Stroke    gesture.Stroke
	Matched   bool // recognizer verdict when the sample was recorded
	Source    string
	CreatedAt time.Time
}

// StrokeData is the wire form of a stroke: parallel x and y arrays, the
// layout handwriting recognition batches use.
type StrokeData struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// EncodeStroke splits a stroke into parallel arrays.
func EncodeStroke(s gesture.Stroke) StrokeData {
	d := StrokeData{X: make([]float64, len(s)), Y: make([]float64, len(s))}
	for i, p := range s {
		d.X[i] = p.X
		d.Y[i] = p.Y
	}
	return d
}

// Stroke rebuilds the points. The arrays must have the same length.
func (d StrokeData) Stroke() (gesture.Stroke, error) {
	if len(d.X) != len(d.Y) {
		return nil, fmt.Errorf("stroke has %d x values and %d y values", len(d.X), len(d.Y))
	}
	s := make(gesture.Stroke, len(d.X))
	for i := range d.X {
		s[i] = gesture.Point{X: d.X[i], Y: d.Y[i]}
	}
	return s, nil
}

type sampleJSON struct {
	ID        string     `json:"id,omitempty"`
	Letter    string     `json:"letter"`
	Stroke    StrokeData `json:"stroke"`
	Matched   bool       `json:"matched"`
	Source    string     `json:"source,omitempty"`
	CreatedAt time.Time  `json:"created_at,omitzero"`
}

// MarshalJSON encodes the letter as a one character string.
func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal(sampleJSON{
		ID:        s.ID,
		Letter:    string(s.Letter),
		Stroke:    EncodeStroke(s.Stroke),
		Matched:   s.Matched,
		Source:    s.Source,
		CreatedAt: s.CreatedAt,
	})
}

// UnmarshalJSON validates the letter and stroke.
func (s *Sample) UnmarshalJSON(data []byte) error {
	var raw sampleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	letter, err := ParseLetter(raw.Letter)
	if err != nil {
		return err
	}
	stroke, err := raw.Stroke.Stroke()
	if err != nil {
		return err
	}
	*s = Sample{
		ID:        raw.ID,
		Letter:    letter,
		Stroke:    stroke,
		Matched:   raw.Matched,
		Source:    raw.Source,
		CreatedAt: raw.CreatedAt,
	}
	return nil
}

// ParseLetter accepts a single latin letter in either case and returns it
// upper case.
func ParseLetter(s string) (rune, error) {
	r := []rune(strings.TrimSpace(s))
	if len(r) != 1 {
		return 0, fmt.Errorf("invalid letter %q", s)
	}
	l := unicode.ToUpper(r[0])
	if l < 'A' || l > 'Z' {
		return 0, fmt.Errorf("invalid letter %q", s)
	}
	return l, nil
}
