package glyphcode

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ledgerline/glyphcode/render"
)

// EncodeOptions configures rendering and serialization.
type EncodeOptions struct {
	// Foreground is the cell color as "#rrggbb" or "#rgb". Defaults to black.
	Foreground string

	// Background is the canvas and logo patch color. Defaults to white.
	Background string

	// LogoSize is the side of the centered logo patch in canvas units.
	// Zero selects render.DefaultLogoSize; negative disables the patch.
	LogoSize float64

	// LogoMark is optional text drawn inside the logo patch.
	LogoMark string

	// QuietZone is the number of light cells the text writer pads around
	// the matrix.
	QuietZone int

	// MaxRasterSide bounds the pixel side of raster output. Zero selects
	// the raster writer's default.
	MaxRasterSide int
}

// Writer serializes a render plan into a document.
type Writer interface {
	// Write writes the document for plan to w.
	Write(w io.Writer, plan *render.Plan, opts *EncodeOptions) error
}

// RenderOptions converts the color and logo settings to render options.
// A nil receiver yields the render defaults.
func (o *EncodeOptions) RenderOptions() (*render.Options, error) {
	ro := render.DefaultOptions()
	if o == nil {
		return ro, nil
	}
	if o.Foreground != "" {
		c, err := ParseColor(o.Foreground)
		if err != nil {
			return nil, fmt.Errorf("foreground: %w", err)
		}
		ro.Foreground = c
	}
	if o.Background != "" {
		c, err := ParseColor(o.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		ro.Background = c
	}
	if o.LogoSize != 0 {
		ro.LogoSize = o.LogoSize
	}
	ro.LogoMark = o.LogoMark
	return ro, nil
}

// ParseColor parses "#rrggbb" or "#rgb" (the leading '#' is optional) into an
// opaque color.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q: %v", ErrColor, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// HexColor formats c as "#rrggbb", ignoring alpha.
func HexColor(c color.RGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
