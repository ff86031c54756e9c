package gesture

import "math"

// Classifier reports whether a normalized stroke has the expected shape of one
// letter. Classifiers are pure and never call each other.
type Classifier func(path []NormalizedPoint) bool

// shapeStride is the look-back used by the segment scans of B and L.
const shapeStride = 5

var classifiers = map[rune]Classifier{
	'A': IsA,
	'B': IsB,
	'C': IsC,
	'O': IsO,
	'L': IsL,
	'I': IsI,
}

// ClassifierFor returns the dedicated classifier of a letter, if it has one.
func ClassifierFor(letter rune) (Classifier, bool) {
	c, ok := classifiers[letter]
	return c, ok
}

// DedicatedLetters lists the letters that have their own classifier, in
// alphabetical order.
func DedicatedLetters() []rune {
	return []rune{'A', 'B', 'C', 'I', 'L', 'O'}
}

// IsA looks for an up-stroke followed later by a down-stroke, the two legs of
// an A.
func IsA(path []NormalizedPoint) bool {
	hasUpward, hasDownward := false, false
	for i := 1; i < len(path); i++ {
		dy := path[i].Y - path[i-1].Y
		if dy < -0.1 {
			hasUpward = true
		}
		if dy > 0.1 && hasUpward {
			hasDownward = true
		}
	}
	return hasUpward && hasDownward
}

// IsB wants a mostly vertical segment and a wide horizontal excursion.
func IsB(path []NormalizedPoint) bool {
	hasVertical, hasCurves := false, false
	for i := shapeStride; i < len(path); i++ {
		dx := math.Abs(path[i].X - path[i-shapeStride].X)
		dy := math.Abs(path[i].Y - path[i-shapeStride].Y)
		if dy > 0.3 && dx < 0.2 {
			hasVertical = true
		}
		if dx > 0.3 {
			hasCurves = true
		}
	}
	return hasVertical && hasCurves
}

// IsC accepts an open curve: the ends stay apart.
func IsC(path []NormalizedPoint) bool {
	if len(path) == 0 {
		return false
	}
	return distance(path[0], path[len(path)-1]) > 0.3 && len(path) > 10
}

// IsO accepts a closed loop: the stroke ends close to where it started.
func IsO(path []NormalizedPoint) bool {
	if len(path) == 0 {
		return false
	}
	return distance(path[0], path[len(path)-1]) < 0.2 && len(path) > 15
}

// IsL wants a vertical segment and a horizontal segment near the bottom.
func IsL(path []NormalizedPoint) bool {
	hasVertical, hasHorizontal := false, false
	for i := shapeStride; i < len(path); i++ {
		dx := math.Abs(path[i].X - path[i-shapeStride].X)
		dy := math.Abs(path[i].Y - path[i-shapeStride].Y)
		if dy > 0.3 && dx < 0.2 {
			hasVertical = true
		}
		if dx > 0.3 && dy < 0.2 && path[i].Y > 0.7 {
			hasHorizontal = true
		}
	}
	return hasVertical && hasHorizontal
}

// IsI sums the vertical travel of the stroke.
func IsI(path []NormalizedPoint) bool {
	var travel float64
	for i := 1; i < len(path); i++ {
		travel += math.Abs(path[i].Y - path[i-1].Y)
	}
	return travel > 0.5
}
