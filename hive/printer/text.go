package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/hiveparse/hive"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// printKeyText prints a key in human-readable text format.
func (p *Printer) printKeyText(id hive.NodeID, depth int) error {
	n := p.h.Node(id)
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)

	fmt.Fprintf(p.w, "%s[%s]\n", indent, n.Name)
	if p.opts.ShowTimestamps {
		fmt.Fprintf(p.w, "%s  Last Write: %s\n", indent, n.Timestamp.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(p.w, "%s  Subkeys: %d, Values: %d\n", indent, len(n.Children), len(n.Values))

	if p.opts.ShowValues {
		for _, v := range p.h.Values(id) {
			if err := p.printValueText(v, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// printValueText prints a value as "Name" [TYPE] = data.
func (p *Printer) printValueText(v *hive.Value, depth int) error {
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)

	fmt.Fprintf(p.w, "%s\"%s\"", indent, displayName(v))
	if p.opts.ShowValueTypes {
		fmt.Fprintf(p.w, " [%s]", v.Type)
	}
	fmt.Fprint(p.w, " = ")

	switch v.Type {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		fmt.Fprintf(p.w, "\"%s\"\n", valueString(v))

	case types.REG_DWORD, types.REG_DWORD_BE:
		if n, ok := valueDWORD(v); ok {
			fmt.Fprintf(p.w, "0x%08X (%d)\n", n, n)
			return nil
		}
		fmt.Fprintf(p.w, "<%d bytes>\n", len(v.Payload()))

	case types.REG_QWORD:
		if n, ok := valueQWORD(v); ok {
			fmt.Fprintf(p.w, "0x%016X (%d)\n", n, n)
			return nil
		}
		fmt.Fprintf(p.w, "<%d bytes>\n", len(v.Payload()))

	case types.REG_MULTI_SZ:
		strs := valueStrings(v)
		if len(strs) == 0 {
			fmt.Fprint(p.w, "[]\n")
			return nil
		}
		fmt.Fprint(p.w, "[\n")
		for _, s := range strs {
			fmt.Fprintf(p.w, "%s  \"%s\"\n", indent, s)
		}
		fmt.Fprintf(p.w, "%s]\n", indent)

	case types.REG_BINARY, types.REG_NONE:
		data := v.Payload()
		shown, cut := p.clip(data)
		truncated := ""
		if cut {
			truncated = fmt.Sprintf(" (truncated, %d total bytes)", len(data))
		}
		if len(shown) == 0 {
			fmt.Fprintf(p.w, "<empty>%s\n", truncated)
		} else {
			fmt.Fprintf(p.w, "%X%s\n", shown, truncated)
		}

	default:
		fmt.Fprintf(p.w, "<%d bytes>\n", len(v.Payload()))
	}
	return nil
}

// printTreeText recursively prints a subtree in text format.
func (p *Printer) printTreeText(id hive.NodeID, depth int) error {
	if p.depthExceeded(depth) {
		return nil
	}
	if err := p.printKeyText(id, depth); err != nil {
		return err
	}
	for _, child := range p.h.Children(id) {
		fmt.Fprintln(p.w)
		if err := p.printTreeText(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
