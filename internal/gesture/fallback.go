package gesture

import (
	"math"
	"math/rand/v2"
)

const (
	// fallbackMinPoints is the fallback's own length gate, independent of the
	// recognizer minimum.
	fallbackMinPoints = 10
	// minSegment ignores jitter: both vectors of a joint must be longer.
	minSegment = 0.01
	// turnCosine is cos(~37°); sharper joints count as a direction change.
	turnCosine = 0.8
	// minDirectionChanges is the complexity a stroke needs before the draw.
	minDirectionChanges = 2
	// rejectBelow makes the fallback accept about 80% of complex strokes.
	rejectBelow = 0.2
)

// Rand is the random source used by the fallback classifier.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DirectionChanges counts the joints where the path turns by more than about
// 37 degrees, skipping joints whose segments are too short to have a direction.
func DirectionChanges(path []NormalizedPoint) int {
	changes := 0
	for i := 2; i < len(path); i++ {
		dx1 := path[i-1].X - path[i-2].X
		dy1 := path[i-1].Y - path[i-2].Y
		dx2 := path[i].X - path[i-1].X
		dy2 := path[i].Y - path[i-1].Y

		mag1 := math.Hypot(dx1, dy1)
		mag2 := math.Hypot(dx2, dy2)
		if mag1 <= minSegment || mag2 <= minSegment {
			continue
		}
		cos := (dx1*dx2 + dy1*dy2) / (mag1 * mag2)
		if cos < turnCosine {
			changes++
		}
	}
	return changes
}

// fallback accepts letters that have no dedicated classifier. A stroke must be
// complex enough first; only then does the random draw decide, so simple
// strokes are always rejected.
func fallback(path []NormalizedPoint, letter rune, rng Rand) Result {
	if len(path) < fallbackMinPoints {
		return NoMatch
	}
	if DirectionChanges(path) < minDirectionChanges {
		return NoMatch
	}
	if rng.Float64() > rejectBelow {
		return Match(letter)
	}
	return NoMatch
}
