package bigchar

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countInk(mask [][]bool) int {
	n := 0
	for _, row := range mask {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}

func TestGlyphHasInk(t *testing.T) {
	for _, l := range "AIOW" {
		img, err := Glyph(l)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, img.Bounds().Dx(), 64)

		mask := Mask(img, 20, 10)
		require.Len(t, mask, 10)
		require.Len(t, mask[0], 20)
		assert.Positive(t, countInk(mask), string(l))
		assert.Less(t, countInk(mask), 200, string(l))
	}
}

func TestLetterIShapeIsTallAndNarrow(t *testing.T) {
	mask, err := LetterMask('I', 21, 21)
	require.NoError(t, err)

	rows, cols := map[int]bool{}, map[int]bool{}
	for y, row := range mask {
		for x, on := range row {
			if on {
				rows[y] = true
				cols[x] = true
			}
		}
	}
	assert.Greater(t, len(rows), len(cols))
}

func TestLetterMaskCached(t *testing.T) {
	a, err := LetterMask('B', 12, 8)
	require.NoError(t, err)
	b, err := LetterMask('B', 12, 8)
	require.NoError(t, err)
	assert.Same(t, &a[0], &b[0])
}

func TestMaskEmptySize(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	assert.Nil(t, Mask(img, 0, 3))
	assert.Empty(t, HalfBlocks(img, 3, 0))
}

func TestHalfBlocks(t *testing.T) {
	// Top half white, bottom half black.
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := range 2 {
		for x := range 4 {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	out := HalfBlocks(img, 4, 1)
	assert.Equal(t, "▀▀▀▀", out)

	out = HalfBlocks(img, 2, 2)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "██", lines[0])
	assert.Equal(t, "  ", lines[1])
}

func TestRenderBlock(t *testing.T) {
	out := RenderBlock('L', 10, 5)
	assert.Len(t, strings.Split(out, "\n"), 5)
	assert.Contains(t, out, "█")
}
