package glyphcode

import (
	"fmt"
	"io"
	"sync"

	"github.com/ledgerline/glyphcode/encoder"
	"github.com/ledgerline/glyphcode/render"
)

// MultiFormatWriter is a factory/dispatcher that selects the appropriate Writer
// implementation based on the requested format.
type MultiFormatWriter struct{}

// NewMultiFormatWriter creates a new multi-format writer.
func NewMultiFormatWriter() *MultiFormatWriter {
	return &MultiFormatWriter{}
}

// writerFactory is a function that creates a Writer.
type writerFactory func() Writer

var (
	writersMu       sync.RWMutex
	writerFactories = map[Format]writerFactory{}
)

// RegisterWriter registers a writer factory for the given format. Writer
// packages call it from init.
func RegisterWriter(format Format, factory writerFactory) {
	writersMu.Lock()
	defer writersMu.Unlock()
	writerFactories[format] = factory
}

// Formats returns the formats with a registered writer, in enum order.
func Formats() []Format {
	writersMu.RLock()
	defer writersMu.RUnlock()
	var formats []Format
	for f := FormatSVG; f <= FormatJSON; f++ {
		if _, ok := writerFactories[f]; ok {
			formats = append(formats, f)
		}
	}
	return formats
}

// Encode renders value at size and writes it in the given format.
func (w *MultiFormatWriter) Encode(out io.Writer, value string, format Format, size float64, opts *EncodeOptions) error {
	writersMu.RLock()
	factory, ok := writerFactories[format]
	writersMu.RUnlock()
	if !ok {
		return fmt.Errorf("no writer registered for format %s: %w", format, ErrUnknownFormat)
	}
	plan, err := Render(value, size, opts)
	if err != nil {
		return err
	}
	return factory().Write(out, plan, opts)
}

// Render generates the matrix for value and lays it out on a size x size
// canvas. It fails only when size is not positive or a color option is
// malformed.
func Render(value string, size float64, opts *EncodeOptions) (*render.Plan, error) {
	ro, err := opts.RenderOptions()
	if err != nil {
		return nil, err
	}
	return render.Render(encoder.Generate(value), size, ro)
}

// Encode is a top-level convenience function that renders value and writes
// it in the specified format.
func Encode(out io.Writer, value string, format Format, size float64, opts *EncodeOptions) error {
	return NewMultiFormatWriter().Encode(out, value, format, size, opts)
}
