package gesture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapeClassifiers(t *testing.T) {
	openGap := 2 * math.Asin(0.6) // a 60px chord on a 50px circle

	tests := []struct {
		name     string
		classify Classifier
		stroke   Stroke
		want     bool
	}{
		{"A inverted V", IsA, join(line(0, 200, 80, 0, 9), line(80, 0, 160, 200, 9)), true},
		{"A down then up", IsA, join(line(0, 0, 80, 200, 9), line(80, 200, 160, 0, 9)), false},
		{"A only down", IsA, line(0, 0, 0, 200, 20), false},

		{"B stem and bowl", IsB, join(line(0, 0, 0, 100, 10), line(0, 100, 100, 100, 11)), true},
		{"B stem only", IsB, line(0, 0, 0, 100, 20), false},
		{"B flat line", IsB, line(0, 0, 100, 0, 20), false},

		{"C open arc", IsC, arc(100, 100, 50, math.Pi/4, 7*math.Pi/4, 20), true},
		{"C closed circle", IsC, arc(100, 100, 50, 0, 2*math.Pi, 20), false},
		{"C too few points", IsC, arc(100, 100, 50, math.Pi/4, 7*math.Pi/4, 10), false},

		{"O closed loop", IsO, arc(100, 100, 50, 0, 2*math.Pi*0.99, 20), true},
		{"O open loop", IsO, arc(100, 100, 50, 0, 2*math.Pi-openGap, 20), false},
		{"O exactly fifteen points", IsO, arc(100, 100, 50, 0, 2*math.Pi, 15), false},

		{"L stem and foot", IsL, join(line(0, 0, 0, 100, 10), line(0, 100, 100, 100, 11)), true},
		{"L foot at the top", IsL, join(line(0, 0, 100, 0, 10), line(100, 0, 100, 100, 11)), false},
		{"L stem only", IsL, line(0, 0, 0, 100, 20), false},

		{"I vertical", IsI, line(50, 10, 50, 200, 16), true},
		{"I horizontal", IsI, line(10, 50, 200, 50, 16), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.classify(Normalize(tc.stroke)))
		})
	}
}

func TestShapeClassifiers_EmptyPath(t *testing.T) {
	for _, letter := range DedicatedLetters() {
		classify, ok := ClassifierFor(letter)
		if assert.True(t, ok, "letter %c", letter) {
			assert.False(t, classify(nil), "letter %c", letter)
		}
	}
}

func TestClassifierFor_Fallbacks(t *testing.T) {
	for _, letter := range "DEFGHJKMNPQRSTUVWXYZ" {
		_, ok := ClassifierFor(letter)
		assert.False(t, ok, "letter %c", letter)
	}
}
