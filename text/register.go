package text

import glyphcode "github.com/ledgerline/glyphcode"

func init() {
	glyphcode.RegisterWriter(glyphcode.FormatText, func() glyphcode.Writer {
		return NewWriter()
	})
}
