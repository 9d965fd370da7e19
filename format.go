// Package glyphcode renders deterministic, barcode-styled pattern matrices.
//
// A value is turned into a fixed 21x21 matrix by the encoder package, laid
// out as rectangles by the render package, and serialized by one of the
// registered writers (svg, raster, text, or the built-in JSON writer).
// The pattern only looks like a 2D barcode; it cannot be scanned.
package glyphcode

import (
	"fmt"
	"strings"
)

// Format represents an output document format.
type Format int

const (
	FormatSVG Format = iota
	FormatPNG
	FormatText
	FormatJSON
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatSVG:
		return "svg"
	case FormatPNG:
		return "png"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ContentType returns the MIME type of documents in this format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// ParseFormat returns the format with the given name. Matching is case-insensitive.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}
