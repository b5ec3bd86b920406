// Package bootkey derives the 16-byte boot key (SysKey) from a decoded
// SYSTEM hive.
//
// The key is scattered over the class names of four keys under
// ControlSet00N\Control\Lsa, where N comes from Select\Default. Each class
// name holds eight hex digits in UTF-16LE; together they spell a scrambled
// 16-byte key that a fixed permutation puts back in order.
//
// N is formatted with three digits, as Windows names control sets:
// Select\Default = 1 selects ControlSet001 and 10 selects ControlSet010.
package bootkey

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/joshuapare/hiveparse/hive"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// Size is the length of a boot key in bytes.
const Size = 16

// LsaKeys are the keys under Control\Lsa whose class names carry the
// scrambled key, in concatenation order.
var LsaKeys = [4]string{"JD", "Skew1", "GBG", "Data"}

// permutation maps output byte i to scrambled byte permutation[i].
var permutation = [Size]int{8, 5, 4, 2, 11, 9, 13, 3, 0, 6, 1, 12, 14, 10, 15, 7}

// digitsPerKey is the number of hex digits taken from each class name.
const digitsPerKey = 8

// SelectPath is the value naming the default control set.
const SelectPath = `Select\Default`

// ControlSetPath returns the key name of control set n, e.g. "ControlSet001".
func ControlSetPath(n int32) string {
	return fmt.Sprintf("ControlSet%03d", n)
}

// Derive reads the scrambled boot key from h and descrambles it. Every
// failure is a types.ErrBootKeyUnavailable error wrapping its cause.
func Derive(h *hive.Hive) ([Size]byte, error) {
	scrambled, err := Scrambled(h)
	if err != nil {
		return [Size]byte{}, err
	}
	return Descramble(scrambled), nil
}

// Scrambled returns the boot key bytes in on-disk order.
func Scrambled(h *hive.Hive) ([Size]byte, error) {
	var out [Size]byte

	cs, err := DefaultControlSet(h)
	if err != nil {
		return out, err
	}

	var digits strings.Builder
	for _, name := range LsaKeys {
		path := ControlSetPath(cs) + `\Control\Lsa\` + name
		id, err := h.ResolveNode(path)
		if err != nil {
			return out, unavailable(fmt.Sprintf("resolve %s", path), err)
		}
		n := h.Node(id)
		count := min(int(n.ClassnameLength), digitsPerKey)
		if count < digitsPerKey || len(n.Classname) <= 2*(digitsPerKey-1) {
			return out, unavailable(fmt.Sprintf("class name of %s holds %d bytes", path, len(n.Classname)), nil)
		}
		for i := 0; i < count; i++ {
			digits.WriteByte(n.Classname[2*i])
		}
	}

	raw, err := hex.DecodeString(digits.String())
	if err != nil {
		return out, unavailable(fmt.Sprintf("class names do not spell a hex key (%q)", digits.String()), err)
	}
	if len(raw) != Size {
		return out, unavailable(fmt.Sprintf("scrambled key is %d bytes", len(raw)), nil)
	}
	copy(out[:], raw)
	return out, nil
}

// DefaultControlSet reads Select\Default as a little-endian int32.
func DefaultControlSet(h *hive.Hive) (int32, error) {
	v, ok, err := h.ResolveValue(SelectPath)
	if err != nil {
		return 0, unavailable("resolve "+SelectPath, err)
	}
	if !ok {
		return 0, unavailable(SelectPath+" value missing", nil)
	}
	n, ok := v.Uint32()
	if !ok {
		return 0, unavailable(fmt.Sprintf("%s holds %d bytes", SelectPath, len(v.Data)), nil)
	}
	return int32(n), nil
}

// Descramble applies the boot key permutation.
func Descramble(scrambled [Size]byte) [Size]byte {
	var out [Size]byte
	for i, p := range permutation {
		out[i] = scrambled[p]
	}
	return out
}

// Format renders key as dash-separated upper-case hex pairs.
func Format(key [Size]byte) string {
	pairs := make([]string, len(key))
	for i, b := range key {
		pairs[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(pairs, "-")
}

func unavailable(msg string, err error) error {
	return types.BootKeyUnavailable(msg, err)
}
