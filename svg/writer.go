// Package svg writes render plans as SVG documents.
package svg

import (
	"fmt"
	"io"
	"strconv"

	svgo "github.com/ajstarks/svgo/float"

	glyphcode "github.com/ledgerline/glyphcode"
	"github.com/ledgerline/glyphcode/render"
)

const defaultDecimals = 4

// Writer encodes plans as SVG.
type Writer struct {
	// Decimals is the number of digits kept after the decimal point.
	Decimals int
}

// NewWriter creates a new SVG Writer.
func NewWriter() *Writer {
	return &Writer{Decimals: defaultDecimals}
}

// Write draws the background, one rect per dark cell inside a group that
// carries the foreground fill, then the logo patch and its mark.
func (w *Writer) Write(out io.Writer, plan *render.Plan, _ *glyphcode.EncodeOptions) error {
	sw := &stickyWriter{w: out}
	canvas := svgo.New(sw)
	canvas.Decimals = w.Decimals

	canvas.Startview(plan.Size, plan.Size, 0, 0, plan.Size, plan.Size)
	canvas.Rect(0, 0, plan.Size, plan.Size, fill(plan.Background))

	if len(plan.Cells) > 0 {
		canvas.Gstyle(fill(plan.Cells[0]))
		for _, c := range plan.Cells {
			canvas.Rect(c.X, c.Y, c.Width, c.Height)
		}
		canvas.Gend()
	}

	if logo := plan.Logo; !logo.Empty() {
		canvas.Rect(logo.X, logo.Y, logo.Width, logo.Height, fill(logo.Rect))
		if logo.Mark != "" {
			cx, cy := logo.Center()
			canvas.Text(cx, cy, logo.Mark, markStyle(logo))
		}
	}

	canvas.End()
	if sw.err != nil {
		return fmt.Errorf("svg: %w", sw.err)
	}
	return nil
}

func fill(r render.Rect) string {
	style := "fill:" + glyphcode.HexColor(r.Color)
	if r.Color.A != 0xFF {
		style += ";fill-opacity:" + strconv.FormatFloat(float64(r.Color.A)/0xFF, 'f', 3, 64)
	}
	return style
}

func markStyle(logo render.Logo) string {
	fontSize := strconv.FormatFloat(logo.Height*0.5, 'f', 2, 64)
	return "text-anchor:middle;dominant-baseline:central;font-family:sans-serif;font-weight:bold" +
		";font-size:" + fontSize + "px;fill:" + glyphcode.HexColor(logo.MarkColor)
}

// stickyWriter remembers the first write error; svgo discards them.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}
