// Package raster draws render plans into images and reads rendered images back.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	glyphcode "github.com/ledgerline/glyphcode"
	"github.com/ledgerline/glyphcode/render"
)

// DefaultMaxSide bounds the pixel side of a rasterized image when the
// options name no limit.
const DefaultMaxSide = 4096

// Writer encodes plans as PNG images.
type Writer struct {
	Compression png.CompressionLevel
}

// NewWriter creates a new PNG Writer.
func NewWriter() *Writer {
	return &Writer{Compression: png.BestCompression}
}

// Write rasterizes plan and encodes it as PNG. opts.MaxRasterSide bounds
// the image side.
func (w *Writer) Write(out io.Writer, plan *render.Plan, opts *glyphcode.EncodeOptions) error {
	maxSide := 0
	if opts != nil {
		maxSide = opts.MaxRasterSide
	}
	img, err := Rasterize(plan, maxSide)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: w.Compression}
	return enc.Encode(out, img)
}

// Rasterize draws plan onto a new image whose side is the canvas size
// rounded up to whole pixels. Cell edges keep their fractional positions and
// are anti-aliased. A side above maxSide fails with an error wrapping
// glyphcode.ErrInvalidArgument; maxSide <= 0 selects DefaultMaxSide.
func Rasterize(plan *render.Plan, maxSide int) (*image.RGBA, error) {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	ceil := math.Ceil(plan.Size)
	if !(ceil <= float64(maxSide)) {
		return nil, fmt.Errorf("%w: raster side %v exceeds %d pixels", glyphcode.ErrInvalidArgument, ceil, maxSide)
	}
	side := int(ceil)
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	z := vector.NewRasterizer(side, side)

	fillRects(z, img, plan.Background.Color, plan.Background)

	// Cells share one path so that coverage along shared edges adds up
	// instead of leaving seams between neighbours.
	if len(plan.Cells) > 0 {
		fillRects(z, img, plan.Cells[0].Color, plan.Cells...)
	}

	if logo := plan.Logo; !logo.Empty() {
		fillRects(z, img, logo.Color, logo.Rect)
		if logo.Mark != "" {
			drawMark(img, logo)
		}
	}
	return img, nil
}

func fillRects(z *vector.Rasterizer, dst *image.RGBA, c color.RGBA, rects ...render.Rect) {
	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	for _, r := range rects {
		x0, y0 := float32(r.X), float32(r.Y)
		x1, y1 := float32(r.X+r.Width), float32(r.Y+r.Height)
		z.MoveTo(x0, y0)
		z.LineTo(x1, y0)
		z.LineTo(x1, y1)
		z.LineTo(x0, y1)
		z.ClosePath()
	}
	z.Draw(dst, b, image.NewUniform(straight(c)), image.Point{})
}

// straight reinterprets plan colors, which carry non-premultiplied alpha.
func straight(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func drawMark(dst *image.RGBA, logo render.Logo) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(straight(logo.MarkColor)),
		Face: face,
	}
	cx, cy := logo.Center()
	width := d.MeasureString(logo.Mark)
	m := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(cx*64) - width/2,
		Y: fixed.Int26_6(cy*64) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(logo.Mark)
}
