package raster

import glyphcode "github.com/ledgerline/glyphcode"

func init() {
	glyphcode.RegisterWriter(glyphcode.FormatPNG, func() glyphcode.Writer {
		return NewWriter()
	})
}
