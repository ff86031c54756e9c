package components

import (
	"image"
	"image/color"

	"github.com/eliukblau/pixterm/pkg/ansimage"
	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"

	"github.com/f3rmion/abc/internal/gesture"
)

// Default preview colors: yellow ink on black.
var (
	PreviewInk               = color.NRGBA{R: 0xff, G: 0xe6, B: 0x6d, A: 0xff}
	PreviewPaper color.Color = color.Black
)

// RasterizeStroke draws the stroke scaled to fit a w x h image with a
// margin, using a round pen of the given width in pixels.
func RasterizeStroke(s gesture.Stroke, w, h int, pen float64) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	if len(s) == 0 || w <= 0 || h <= 0 {
		return img
	}

	margin := pen + 1
	b := s.Bounds()
	scale := min(
		(float64(w)-2*margin)/max(b.Width(), 1),
		(float64(h)-2*margin)/max(b.Height(), 1),
	)
	// Centre the drawing in the image.
	offX := (float64(w) - b.Width()*scale) / 2
	offY := (float64(h) - b.Height()*scale) / 2
	pt := func(p gesture.Point) fixed.Point26_6 {
		return fixed.Point26_6{
			X: fixed.Int26_6(((p.X-b.MinX)*scale + offX) * 64),
			Y: fixed.Int26_6(((p.Y-b.MinY)*scale + offY) * 64),
		}
	}

	var path raster.Path
	path.Start(pt(s[0]))
	if len(s) == 1 {
		// A lone point still leaves a dot.
		p := pt(s[0])
		p.X++
		path.Add1(p)
	}
	for _, p := range s[1:] {
		path.Add1(pt(p))
	}

	r := raster.NewRasterizer(w, h)
	raster.Stroke(r, path, fixed.Int26_6(pen*64), raster.RoundCapper, raster.RoundJoiner)
	r.Rasterize(raster.NewAlphaOverPainter(img))
	return img
}

// ink paints an alpha mask in a solid colour.
type ink struct {
	mask *image.Alpha
	c    color.NRGBA
}

func (i ink) ColorModel() color.Model { return color.NRGBAModel }
func (i ink) Bounds() image.Rectangle { return i.mask.Bounds() }
func (i ink) At(x, y int) color.Color {
	c := i.c
	c.A = i.mask.AlphaAt(x, y).A
	return c
}

// StrokePreview renders the stroke as coloured terminal art, cols wide and
// rows high.
func StrokePreview(s gesture.Stroke, cols, rows int, c color.NRGBA, bg color.Color) (string, error) {
	// Half-block rendering packs two pixels per cell vertically.
	w, h := cols*4, rows*8
	mask := RasterizeStroke(s, w, h, float64(min(w, h))/16)
	img, err := ansimage.NewScaledFromImage(ink{mask: mask, c: c}, rows*2, cols, bg, ansimage.ScaleModeResize, ansimage.NoDithering)
	if err != nil {
		return "", err
	}
	return img.Render(), nil
}
