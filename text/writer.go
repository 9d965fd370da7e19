// Package text writes render plans as block-character text.
package text

import (
	"io"

	glyphcode "github.com/ledgerline/glyphcode"
	"github.com/ledgerline/glyphcode/bitutil"
	"github.com/ledgerline/glyphcode/render"
)

// Writer prints two characters per cell so cells come out roughly square.
type Writer struct {
	Dark  string
	Light string
}

// NewWriter creates a Writer using full blocks for dark cells.
func NewWriter() *Writer {
	return &Writer{Dark: "██", Light: "  "}
}

// Write prints the cells left visible by the logo patch, padded by
// opts.QuietZone light cells on every side.
func (w *Writer) Write(out io.Writer, plan *render.Plan, opts *glyphcode.EncodeOptions) error {
	quiet := 0
	if opts != nil && opts.QuietZone > 0 {
		quiet = opts.QuietZone
	}
	_, err := io.WriteString(out, pad(plan.Visible(), quiet).StringWithChars(w.Dark, w.Light))
	return err
}

func pad(bits *bitutil.BitMatrix, quiet int) *bitutil.BitMatrix {
	if quiet == 0 {
		return bits
	}
	padded := bitutil.NewBitMatrixWithSize(bits.Width()+2*quiet, bits.Height()+2*quiet)
	for y := 0; y < bits.Height(); y++ {
		for x := 0; x < bits.Width(); x++ {
			if bits.Get(x, y) {
				padded.Set(x+quiet, y+quiet)
			}
		}
	}
	return padded
}
