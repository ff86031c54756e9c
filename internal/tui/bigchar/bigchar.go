// Package bigchar renders letters as large block art for the tracing canvas.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Threshold is the brightness above which a scaled pixel counts as ink.
const Threshold = 40

var (
	faceOnce sync.Once
	face     font.Face
	faceErr  error
)

func loadFace() (font.Face, error) {
	faceOnce.Do(func() {
		fnt, err := opentype.Parse(gobold.TTF)
		if err != nil {
			faceErr = fmt.Errorf("parsing Go Bold: %w", err)
			return
		}
		face, faceErr = opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    128,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return face, faceErr
}

// Glyph draws the letter white on black, centred, with a little padding.
func Glyph(letter rune) (*image.Gray, error) {
	f, err := loadFace()
	if err != nil {
		return nil, err
	}

	bounds, _, ok := f.GlyphBounds(letter)
	if !ok {
		return nil, fmt.Errorf("no glyph for %q", letter)
	}
	glyphWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	padding := 8
	w := max(glyphWidth+padding*2, 64)
	h := max(glyphHeight+padding*2, 64)

	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	x := (w-glyphWidth)/2 - bounds.Min.X.Floor()
	y := (h-glyphHeight)/2 - bounds.Min.Y.Floor()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: f,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(string(letter))
	return img, nil
}

// Mask scales img to cols x rows and reports which cells carry ink.
func Mask(img image.Image, cols, rows int) [][]bool {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	scaled := imaging.Resize(img, cols, rows, imaging.Box)
	mask := make([][]bool, rows)
	for y := range rows {
		mask[y] = make([]bool, cols)
		for x := range cols {
			mask[y][x] = brightness(scaled, x, y) > Threshold
		}
	}
	return mask
}

// HalfBlocks renders img into cols x rows terminal cells with ▀▄█, two
// vertical pixels per cell.
func HalfBlocks(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	scaled := imaging.Resize(img, cols, rows*2, imaging.Box)

	var b strings.Builder
	for row := range rows {
		for col := range cols {
			topOn := brightness(scaled, col, row*2) > Threshold
			bottomOn := brightness(scaled, col, row*2+1) > Threshold
			switch {
			case topOn && bottomOn:
				b.WriteRune('█')
			case topOn:
				b.WriteRune('▀')
			case bottomOn:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func brightness(img *image.NRGBA, x, y int) uint8 {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return 0
	}
	c := img.NRGBAAt(x, y)
	return uint8((uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3 * uint32(c.A) / 255)
}

type cacheKey struct {
	letter     rune
	cols, rows int
}

var (
	cacheMu sync.Mutex
	cache   = make(map[cacheKey][][]bool)
)

// LetterMask returns the cached ink mask of a letter at the given size.
func LetterMask(letter rune, cols, rows int) ([][]bool, error) {
	key := cacheKey{letter, cols, rows}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if m, ok := cache[key]; ok {
		return m, nil
	}
	img, err := Glyph(letter)
	if err != nil {
		return nil, err
	}
	m := Mask(img, cols, rows)
	cache[key] = m
	return m, nil
}

// RenderBlock renders a letter as half-block art.
func RenderBlock(letter rune, cols, rows int) string {
	img, err := Glyph(letter)
	if err != nil {
		return ""
	}
	return HalfBlocks(img, cols, rows)
}
