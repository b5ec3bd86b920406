package printer

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/joshuapare/hiveparse/hive"
	"github.com/joshuapare/hiveparse/pkg/types"
)

const regHeader = "Windows Registry Editor Version 5.00"

// RegRoot prefixes key paths in .reg output.
const RegRoot = "HKEY_LOCAL_MACHINE"

// printKeyReg prints a key in Windows .reg file format.
func (p *Printer) printKeyReg(id hive.NodeID, header bool) error {
	if header {
		fmt.Fprintf(p.w, "%s\n\n", regHeader)
	}
	fmt.Fprintf(p.w, "[%s]\n", regPath(p.h.Path(id)))
	if !p.opts.ShowValues {
		return nil
	}
	for _, v := range p.h.Values(id) {
		if err := p.printValueReg(v); err != nil {
			return err
		}
	}
	return nil
}

// printTreeReg recursively prints a subtree in .reg file format.
func (p *Printer) printTreeReg(id hive.NodeID, depth int) error {
	if p.depthExceeded(depth) {
		return nil
	}
	if err := p.printKeyReg(id, false); err != nil {
		return err
	}
	for _, child := range p.h.Children(id) {
		fmt.Fprintln(p.w)
		if err := p.printTreeReg(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// printValueReg prints a value in .reg file format.
func (p *Printer) printValueReg(v *hive.Value) error {
	name := "@"
	if v.NameLength != 0 {
		name = fmt.Sprintf("\"%s\"", escapeRegString(v.Name))
	}

	switch v.Type {
	case types.REG_SZ:
		_, err := fmt.Fprintf(p.w, "%s=\"%s\"\n", name, escapeRegString(valueString(v)))
		return err

	case types.REG_DWORD:
		if n, ok := valueDWORD(v); ok {
			_, err := fmt.Fprintf(p.w, "%s=dword:%08x\n", name, n)
			return err
		}

	case types.REG_QWORD:
		if n, ok := valueQWORD(v); ok {
			_, err := fmt.Fprintf(p.w, "%s=hex(b):%s\n", name, formatQWORD(n))
			return err
		}
	}

	data := v.Payload()
	if v.Type == types.REG_BINARY || v.Type == types.REG_NONE {
		data, _ = p.clip(data)
	}
	if v.Type == types.REG_BINARY {
		_, err := fmt.Fprintf(p.w, "%s=hex:%s\n", name, formatHexBytes(data))
		return err
	}
	_, err := fmt.Fprintf(p.w, "%s=hex(%x):%s\n", name, uint32(v.Type), formatHexBytes(data))
	return err
}

// regPath prefixes path with the registry root.
func regPath(path string) string {
	if path == "" {
		return RegRoot
	}
	return RegRoot + `\` + path
}

// escapeRegString escapes backslashes and quotes in .reg strings.
func escapeRegString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// formatHexBytes formats bytes as comma-separated hex values for .reg format.
func formatHexBytes(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, ",")
}

// formatQWORD formats a QWORD as little-endian hex bytes.
func formatQWORD(val uint64) string {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, val)
	return formatHexBytes(buf)
}
