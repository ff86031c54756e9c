package gesture

import "math"

// line returns n evenly spaced points from (x0,y0) to (x1,y1), both ends included.
func line(x0, y0, x1, y1 float64, n int) Stroke {
	s := make(Stroke, n)
	for i := range s {
		t := float64(i) / float64(n-1)
		s[i] = Point{X: x0 + (x1-x0)*t, Y: y0 + (y1-y0)*t}
	}
	return s
}

// join concatenates strokes, dropping the shared first point of every part after the first.
func join(parts ...Stroke) Stroke {
	var out Stroke
	for i, p := range parts {
		if i > 0 && len(p) > 0 {
			p = p[1:]
		}
		out = append(out, p...)
	}
	return out
}

// arc returns n points on a circle between two angles in radians.
func arc(cx, cy, r, from, to float64, n int) Stroke {
	s := make(Stroke, n)
	for i := range s {
		a := from + (to-from)*float64(i)/float64(n-1)
		s[i] = Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return s
}

// zigzag alternates between y=0 and y=h while moving right.
func zigzag(n int, step, h float64) Stroke {
	s := make(Stroke, n)
	for i := range s {
		y := 0.0
		if i%2 == 1 {
			y = h
		}
		s[i] = Point{X: float64(i) * step, Y: y}
	}
	return s
}

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }
