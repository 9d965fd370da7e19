package glyphcode

import (
	"errors"

	"github.com/ledgerline/glyphcode/render"
)

var (
	// ErrInvalidArgument is returned when the canvas size is zero, negative,
	// not finite, or larger than a writer or service allows.
	ErrInvalidArgument = render.ErrInvalidSize

	// ErrUnknownFormat is returned when no writer handles the requested format.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrColor is returned when a color option cannot be parsed.
	ErrColor = errors.New("invalid color")
)
