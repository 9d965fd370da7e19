package svg

import glyphcode "github.com/ledgerline/glyphcode"

func init() {
	glyphcode.RegisterWriter(glyphcode.FormatSVG, func() glyphcode.Writer {
		return NewWriter()
	})
}
