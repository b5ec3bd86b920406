package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// DecodeName turns raw key or value name bytes into a Go string. Valid UTF-8
// is taken verbatim whatever the record flags say. Other bytes are decoded as
// UTF-16LE when the record does not mark the name as 8-bit and the length is
// even, and as Windows-1252 otherwise. Decoding never fails; bytes no
// encoding accepts become U+FFFD.
func DecodeName(raw []byte, compressed bool) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	if !compressed && len(raw)%2 == 0 {
		if s, err := DecodeUTF16LE(raw); err == nil {
			return s
		}
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return string(out)
}

// DecodeUTF16LE decodes UTF-16LE text, dropping a trailing NUL terminator.
func DecodeUTF16LE(raw []byte) (string, error) {
	if len(raw)%2 != 0 {
		return "", fmt.Errorf("utf-16 name has odd length %d", len(raw))
	}
	for len(raw) >= 2 && raw[len(raw)-2] == 0 && raw[len(raw)-1] == 0 {
		raw = raw[:len(raw)-2]
	}
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("utf-16 name: %w", err)
	}
	return string(out), nil
}

// EncodeUTF16LE encodes s as UTF-16LE without a terminator.
func EncodeUTF16LE(s string) []byte {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		// the encoder replaces invalid input; errors only come from the transformer
		return nil
	}
	return out
}
