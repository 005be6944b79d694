// Package textfile decodes uploaded prescription text files.
package textfile

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode interprets raw upload bytes as UTF-8 and falls back to Latin-1
// for legacy exports. The error path is kept for symmetry even though
// Latin-1 accepts any byte sequence.
func Decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("unable to decode text file, ensure it is UTF-8 or Latin-1 encoded: %w", err)
	}
	return string(decoded), nil
}
