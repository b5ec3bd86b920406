package printer

import (
	"encoding/binary"
	"strings"

	"github.com/joshuapare/hiveparse/hive"
	"github.com/joshuapare/hiveparse/internal/format"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// valueString decodes REG_SZ/REG_EXPAND_SZ/REG_LINK data. A stray odd byte
// at the end is dropped.
func valueString(v *hive.Value) string {
	data := v.Payload()
	data = data[:len(data)&^1]
	s, err := format.DecodeUTF16LE(data)
	if err != nil {
		return ""
	}
	return s
}

// valueStrings decodes REG_MULTI_SZ data into its strings.
func valueStrings(v *hive.Value) []string {
	s := strings.TrimRight(valueString(v), "\x00")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\x00")
}

// valueDWORD decodes REG_DWORD and REG_DWORD_BE data.
func valueDWORD(v *hive.Value) (uint32, bool) {
	data := v.Payload()
	if len(data) < 4 {
		return 0, false
	}
	if v.Type == types.REG_DWORD_BE {
		return binary.BigEndian.Uint32(data), true
	}
	return binary.LittleEndian.Uint32(data), true
}

// valueQWORD decodes REG_QWORD data.
func valueQWORD(v *hive.Value) (uint64, bool) {
	data := v.Payload()
	if len(data) < 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(data), true
}

// displayName returns the name shown for v in text and JSON output.
func displayName(v *hive.Value) string {
	if v.NameLength == 0 {
		return DefaultKeyNameSymbol
	}
	return v.Name
}

// clip limits data to MaxValueBytes and reports whether it was cut.
func (p *Printer) clip(data []byte) ([]byte, bool) {
	if p.opts.MaxValueBytes == 0 || len(data) <= p.opts.MaxValueBytes {
		return data, false
	}
	return data[:p.opts.MaxValueBytes], true
}
