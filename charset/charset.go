// Package charset converts legacy-encoded input to UTF-8 before a value is
// generated, so the same text hashes to the same code points whatever file
// encoding it arrived in.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// ErrUnknownCharset indicates a charset name with no known decoder.
var ErrUnknownCharset = errors.New("charset: unknown charset")

// Decode converts data from the named charset to a UTF-8 string. Names follow
// the WHATWG encoding labels ("shift_jis", "windows-1252", "utf-16le", ...).
// An empty name guesses the charset from the bytes. A leading byte order mark
// is dropped.
func Decode(data []byte, name string) (string, error) {
	if name == "" {
		name = Guess(data)
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("charset: decode %s: %w", name, err)
	}
	return strings.TrimPrefix(string(decoded), "\uFEFF"), nil
}
