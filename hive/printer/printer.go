// Package printer renders decoded hive keys and values as text, JSON, or
// Windows .reg files.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/hiveparse/hive"
	"github.com/joshuapare/hiveparse/pkg/types"
)

const (
	DefaultIndentSize    = 2
	DefaultMaxDepth      = 0
	DefaultMaxValueBytes = 32
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"

	// FormatReg outputs Windows .reg file format.
	FormatReg Format = "reg"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatReg:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, or reg)", s)
	}
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json, reg).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth limits recursion depth (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowValues includes value data in output.
	// Default: true
	ShowValues bool

	// ShowTimestamps includes last-write times.
	// Default: false
	ShowTimestamps bool

	// ShowValueTypes includes REG_* type names.
	// Default: true
	ShowValueTypes bool

	// MaxValueBytes limits how many bytes of binary values to display.
	// Longer values are truncated. Set to 0 for no limit.
	// Default: 32
	MaxValueBytes int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:         FormatText,
		IndentSize:     DefaultIndentSize,
		MaxDepth:       DefaultMaxDepth,
		ShowValues:     true,
		ShowValueTypes: true,
		MaxValueBytes:  DefaultMaxValueBytes,
	}
}

// Printer writes formatted views of one hive.
type Printer struct {
	opts Options
	w    io.Writer
	h    *hive.Hive
}

// New creates a Printer for h writing to w.
//
//	h, _ := hive.Open("SYSTEM")
//	p := printer.New(h, os.Stdout, printer.DefaultOptions())
//	p.PrintKey(`ControlSet001\Control\Lsa`)
func New(h *hive.Hive, w io.Writer, opts Options) *Printer {
	return &Printer{h: h, w: w, opts: opts}
}

// PrintKey prints a key and, when ShowValues is set, its values.
func (p *Printer) PrintKey(path string) error {
	id, err := p.h.ResolveNode(path)
	if err != nil {
		return fmt.Errorf("find key %q: %w", path, err)
	}

	switch p.opts.Format {
	case FormatJSON:
		return p.writeJSON(p.buildKey(id, 0, false))
	case FormatReg:
		return p.printKeyReg(id, true)
	default:
		return p.printKeyText(id, 0)
	}
}

// PrintValue prints a single value of the key at keyPath.
func (p *Printer) PrintValue(keyPath, valueName string) error {
	id, err := p.h.ResolveNode(keyPath)
	if err != nil {
		return fmt.Errorf("find key %q: %w", keyPath, err)
	}
	v := p.findValue(id, valueName)
	if v == nil {
		return fmt.Errorf("get value %q: %w", valueName, &types.Error{
			Kind:    types.ErrKindPathNotFound,
			Msg:     fmt.Sprintf("no value named %q", valueName),
			Segment: valueName,
		})
	}

	switch p.opts.Format {
	case FormatJSON:
		return p.writeJSON(p.buildValue(v))
	case FormatReg:
		return p.printValueReg(v)
	default:
		return p.printValueText(v, 0)
	}
}

// PrintValues prints every value of the key at keyPath.
func (p *Printer) PrintValues(keyPath string) error {
	id, err := p.h.ResolveNode(keyPath)
	if err != nil {
		return fmt.Errorf("find key %q: %w", keyPath, err)
	}
	values := p.h.Values(id)

	switch p.opts.Format {
	case FormatJSON:
		out := make([]jsonValue, 0, len(values))
		for _, v := range values {
			out = append(out, p.buildValue(v))
		}
		return p.writeJSON(out)
	case FormatReg:
		return p.printKeyReg(id, true)
	default:
		for _, v := range values {
			if err := p.printValueText(v, 0); err != nil {
				return err
			}
		}
		return nil
	}
}

// PrintTree prints an entire subtree, bounded by MaxDepth.
func (p *Printer) PrintTree(path string) error {
	id, err := p.h.ResolveNode(path)
	if err != nil {
		return fmt.Errorf("find key %q: %w", path, err)
	}

	switch p.opts.Format {
	case FormatJSON:
		return p.writeJSON(p.buildKey(id, 0, true))
	case FormatReg:
		fmt.Fprintf(p.w, "%s\n\n", regHeader)
		return p.printTreeReg(id, 0)
	default:
		return p.printTreeText(id, 0)
	}
}

func (p *Printer) findValue(id hive.NodeID, name string) *hive.Value {
	for _, v := range p.h.Values(id) {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// depthExceeded reports whether depth is past the configured limit.
func (p *Printer) depthExceeded(depth int) bool {
	return p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth
}
