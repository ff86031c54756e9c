// Package gesture recognizes single freehand strokes as letters of the alphabet.
//
// A stroke is normalized into the unit square and checked against a small set
// of per-letter shape predicates. Letters without a dedicated predicate go
// through a lenient fallback that only asks for a stroke with a few turns.
package gesture

import "math"

// Point is a pointer position in pixels, relative to the top-left corner of
// the drawing surface. Y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is the ordered sequence of points captured between pointer-down and
// pointer-up.
type Stroke []Point

// NormalizedPoint is a point mapped into the stroke's bounding box, with both
// coordinates in [0, 1].
type NormalizedPoint struct {
	X float64
	Y float64
}

// Bounds is the axis-aligned bounding box of a stroke.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Bounds returns the bounding box of the stroke. An empty stroke has a zero box.
func (s Stroke) Bounds() Bounds {
	if len(s) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range s {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// Normalize maps every point of the stroke into the unit square defined by the
// stroke's bounding box. An axis with zero extent maps to 0.5 for every point,
// so single-point and perfectly straight strokes never divide by zero.
func Normalize(s Stroke) []NormalizedPoint {
	if len(s) == 0 {
		return nil
	}
	b := s.Bounds()
	width, height := b.Width(), b.Height()

	out := make([]NormalizedPoint, len(s))
	for i, p := range s {
		np := NormalizedPoint{X: 0.5, Y: 0.5}
		if width > 0 {
			np.X = (p.X - b.MinX) / width
		}
		if height > 0 {
			np.Y = (p.Y - b.MinY) / height
		}
		out[i] = np
	}
	return out
}

func distance(a, b NormalizedPoint) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
