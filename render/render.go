// Package render turns a cell grid into drawable rectangles.
//
// A Plan is backend agnostic: the svg, raster and text writers, the HTTP
// service and the terminal preview all draw from the same Plan. The renderer
// never sees the value a grid was generated from.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/ledgerline/glyphcode/bitutil"
)

// DefaultLogoSize is the side of the logo patch in canvas units.
const DefaultLogoSize = 40

// ErrInvalidSize is returned when the canvas size is not a positive finite
// number, or is too large for the output backend.
var ErrInvalidSize = errors.New("render: invalid canvas size")

var (
	defaultForeground = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	defaultBackground = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

// Grid is a square grid of dark/light cells.
type Grid interface {
	Dimension() int
	Get(x, y int) bool
}

// Options configures colors and the logo patch. A nil *Options renders black
// cells on white with a DefaultLogoSize patch.
type Options struct {
	Foreground color.RGBA
	Background color.RGBA

	// LogoSize is the side of the centered patch. Zero selects
	// DefaultLogoSize; negative values disable the patch.
	LogoSize float64

	// LogoMark is optional text drawn at the center of the patch.
	LogoMark string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		Foreground: defaultForeground,
		Background: defaultBackground,
		LogoSize:   DefaultLogoSize,
	}
}

// Rect is a filled axis-aligned rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Color  color.RGBA
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Logo is the centered patch drawn above every cell.
type Logo struct {
	Rect
	Mark      string
	MarkColor color.RGBA
}

// Plan is the ordered drawing description of a grid: Background first,
// then Cells in row-major order, then Logo.
type Plan struct {
	Size       float64
	Dimension  int
	CellSize   float64
	Background Rect
	Cells      []Rect
	Logo       Logo
}

// Render lays out grid on a size x size canvas. Cell size is size divided by
// the grid dimension with no rounding.
func Render(grid Grid, size float64, opts *Options) (*Plan, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: must be positive, got %v", ErrInvalidSize, size)
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	dimension := grid.Dimension()
	cellSize := size / float64(dimension)
	plan := &Plan{
		Size:       size,
		Dimension:  dimension,
		CellSize:   cellSize,
		Background: Rect{Width: size, Height: size, Color: opts.Background},
	}

	for y := 0; y < dimension; y++ {
		for x := 0; x < dimension; x++ {
			if !grid.Get(x, y) {
				continue
			}
			plan.Cells = append(plan.Cells, Rect{
				X:      float64(x) * cellSize,
				Y:      float64(y) * cellSize,
				Width:  cellSize,
				Height: cellSize,
				Color:  opts.Foreground,
			})
		}
	}

	plan.Logo = layoutLogo(size, opts)
	return plan, nil
}

// layoutLogo centers the patch on the canvas. The patch never grows past
// the canvas and is always opaque.
func layoutLogo(size float64, opts *Options) Logo {
	side := opts.LogoSize
	switch {
	case side == 0:
		side = DefaultLogoSize
	case side < 0:
		side = 0
	}
	side = math.Min(side, size)

	fill := opts.Background
	fill.A = 0xFF
	return Logo{
		Rect: Rect{
			X:      (size - side) / 2,
			Y:      (size - side) / 2,
			Width:  side,
			Height: side,
			Color:  fill,
		},
		Mark:      opts.LogoMark,
		MarkColor: opts.Foreground,
	}
}

// Rects returns every rectangle in drawing order, including the logo patch
// when it has an area.
func (p *Plan) Rects() []Rect {
	rects := make([]Rect, 0, len(p.Cells)+2)
	rects = append(rects, p.Background)
	rects = append(rects, p.Cells...)
	if !p.Logo.Empty() {
		rects = append(rects, p.Logo.Rect)
	}
	return rects
}

// Occluded reports whether the center of cell (x, y) falls under the logo.
func (p *Plan) Occluded(x, y int) bool {
	if p.Logo.Empty() {
		return false
	}
	cx := (float64(x) + 0.5) * p.CellSize
	cy := (float64(y) + 0.5) * p.CellSize
	return p.Logo.Contains(cx, cy)
}

// Visible returns the dark cells that remain visible once the logo is drawn.
func (p *Plan) Visible() *bitutil.BitMatrix {
	visible := bitutil.NewBitMatrix(p.Dimension)
	for _, c := range p.Cells {
		x, y := p.cellIndex(c)
		if !p.Occluded(x, y) {
			visible.Set(x, y)
		}
	}
	return visible
}

func (p *Plan) cellIndex(c Rect) (x, y int) {
	return int(math.Round(c.X / p.CellSize)), int(math.Round(c.Y / p.CellSize))
}
