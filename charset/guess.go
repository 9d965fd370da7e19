package charset

import "unicode/utf8"

// Guess names the most likely charset of data: "utf-16be" or "utf-16le"
// when a UTF-16 byte order mark is present, "utf-8" for valid UTF-8,
// "shift_jis" for runs of Shift_JIS double byte or katakana characters and
// "iso-8859-1" otherwise.
func Guess(data []byte) string {
	if len(data) >= 2 {
		switch {
		case data[0] == 0xFE && data[1] == 0xFF:
			return "utf-16be"
		case data[0] == 0xFF && data[1] == 0xFE:
			return "utf-16le"
		}
	}
	if utf8.Valid(data) {
		return "utf-8"
	}
	if looksShiftJIS(data) {
		return "shift_jis"
	}
	return "iso-8859-1"
}

// looksShiftJIS accepts data that is well formed Shift_JIS and contains a
// word of at least three katakana or double byte characters.
func looksShiftJIS(data []byte) bool {
	bytesLeft := 0
	katakanaRun, maxKatakana := 0, 0
	doubleRun, maxDouble := 0, 0
	for _, value := range data {
		switch {
		case bytesLeft > 0:
			if value < 0x40 || value == 0x7F || value > 0xFC {
				return false
			}
			bytesLeft--
		case value == 0x80 || value == 0xA0 || value > 0xEF:
			return false
		case value > 0xA0 && value < 0xE0:
			doubleRun = 0
			katakanaRun++
			maxKatakana = max(maxKatakana, katakanaRun)
		case value > 0x7F:
			bytesLeft++
			katakanaRun = 0
			doubleRun++
			maxDouble = max(maxDouble, doubleRun)
		default:
			katakanaRun, doubleRun = 0, 0
		}
	}
	return bytesLeft == 0 && (maxKatakana >= 3 || maxDouble >= 3)
}
