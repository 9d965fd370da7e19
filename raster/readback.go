package raster

import (
	"image"
	"image/color"

	glyphcode "github.com/ledgerline/glyphcode"
	"github.com/ledgerline/glyphcode/bitutil"
)

// Mismatch is a cell whose rendered shade differs from the expected matrix.
type Mismatch struct {
	X, Y int
	Want bool
}

// luminance converts c to 8-bit greyscale with the integer weights
// (306*R + 601*G + 117*B + 0x200) >> 10. Fully transparent pixels read as
// white.
func luminance(c color.Color) int {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return 0xFF
	}
	r8, g8, b8 := r>>8, g>>8, b>>8
	return int((306*r8 + 601*g8 + 117*b8 + 0x200) >> 10)
}

// ReadMatrix samples the center pixel of every cell of a dimension x
// dimension grid laid over img. A cell is dark when its luminance is closer
// to fg than to bg.
func ReadMatrix(img image.Image, dimension int, fg, bg color.Color) *bitutil.BitMatrix {
	lf, lb := luminance(fg), luminance(bg)
	b := img.Bounds()
	cellW := float64(b.Dx()) / float64(dimension)
	cellH := float64(b.Dy()) / float64(dimension)
	bits := bitutil.NewBitMatrix(dimension)
	for y := 0; y < dimension; y++ {
		py := b.Min.Y + int((float64(y)+0.5)*cellH)
		for x := 0; x < dimension; x++ {
			px := b.Min.X + int((float64(x)+0.5)*cellW)
			l := luminance(img.At(px, py))
			if abs(l-lf) < abs(l-lb) {
				bits.Set(x, y)
			}
		}
	}
	return bits
}

// Verify checks that img is a rendering of value with opts. Cells hidden by
// the logo patch are skipped. It returns the cells whose shade disagrees.
//
// The layout is rebuilt at the image width, so img must have been rendered
// at a whole-pixel canvas size. A fractional render (180.5 is stored as 181
// pixels) is compared against the 181 unit layout, which shifts the sampled
// centers slightly.
func Verify(img image.Image, value string, opts *glyphcode.EncodeOptions) ([]Mismatch, error) {
	plan, err := glyphcode.Render(value, float64(img.Bounds().Dx()), opts)
	if err != nil {
		return nil, err
	}
	want := plan.Visible()
	ro, err := opts.RenderOptions()
	if err != nil {
		return nil, err
	}
	got := ReadMatrix(img, plan.Dimension, ro.Foreground, ro.Background)

	var mismatches []Mismatch
	for y := 0; y < plan.Dimension; y++ {
		for x := 0; x < plan.Dimension; x++ {
			if plan.Occluded(x, y) {
				continue
			}
			if got.Get(x, y) != want.Get(x, y) {
				mismatches = append(mismatches, Mismatch{X: x, Y: y, Want: want.Get(x, y)})
			}
		}
	}
	return mismatches, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
