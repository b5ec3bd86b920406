package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeName(t *testing.T) {
	tests := []struct {
		name       string
		raw        []byte
		compressed bool
		want       string
	}{
		{"ascii", []byte("ControlSet001"), true, "ControlSet001"},
		{"ascii without 8-bit flag", []byte("ControlSet001"), false, "ControlSet001"},
		{"utf8 passthrough", []byte("caf\xc3\xa9"), true, "café"},
		{"utf8 without 8-bit flag", []byte("caf\xc3\xa9"), false, "café"},
		{"windows-1252", []byte{'a', 'b', 'c', 'd', '_', 0xE4, 0xF6, 0xFC, 0xDF}, true, "abcd_äöüß"},
		{"windows-1252 odd length without flag", []byte{'a', 'b', 0xE4}, false, "abä"},
		{"utf-16le", []byte{0x61, 0x00, 0x62, 0x00, 0xE4, 0x00}, false, "abä"},
		{"utf-16le with terminator", []byte{0x57, 0x00, 0xEF, 0x00, 0x00, 0x00}, false, "Wï"},
		{"8-bit flag wins over utf-16", []byte{0x61, 0x00, 0xE4, 0x00}, true, "a\x00ä\x00"},
		{"empty", nil, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DecodeName(tt.raw, tt.compressed))
		})
	}
}

func TestEncodeUTF16LE(t *testing.T) {
	require.Equal(t, []byte{0x4A, 0x00, 0x44, 0x00}, EncodeUTF16LE("JD"))
	s, err := DecodeUTF16LE(EncodeUTF16LE("Skew1"))
	require.NoError(t, err)
	require.Equal(t, "Skew1", s)
}
