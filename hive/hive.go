package hive

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joshuapare/hiveparse/internal/format"
	"github.com/joshuapare/hiveparse/internal/mmfile"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// Hive is a fully decoded registry hive. It holds no reference to the bytes it
// was decoded from and is safe for concurrent readers.
type Hive struct {
	path   string
	info   types.HiveInfo
	nodes  []Node
	values []Value

	// WasExported is carried for callers that track whether the hive came
	// from a live-system export. The parser never sets it.
	WasExported bool
}

// Open maps the hive file at path and decodes its key tree.
func Open(path string, opts ...Option) (*Hive, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.Error{
				Kind: types.ErrKindFileNotFound,
				Msg:  fmt.Sprintf("hive file %s not found", path),
				Err:  err,
			}
		}
		return nil, fmt.Errorf("open hive %s: %w", path, err)
	}
	defer release()

	return OpenBytes(data, append([]Option{WithSourcePath(path)}, opts...)...)
}

// OpenBytes decodes a hive image held in memory. The returned Hive copies
// every byte it keeps, so data may be reused afterwards.
func OpenBytes(data []byte, opts ...Option) (*Hive, error) {
	o := buildOptions(opts)
	began := time.Now()

	header, err := format.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	root := rootOffset(header, data)
	if uint32(root) != header.RootCellOffset {
		o.logger.Debug("stored root cell offset not used",
			"stored", header.RootCellOffset, "used", root)
	}

	d := newDecoder(data, o.maxDepth)
	if err := d.decodeTree(root); err != nil {
		return nil, fmt.Errorf("decode hive: %w", err)
	}

	h := &Hive{
		path:   o.path,
		info:   header.Info(),
		nodes:  d.nodes,
		values: d.values,
	}
	o.logger.Debug("hive decoded",
		"path", o.path,
		"keys", len(h.nodes),
		"values", len(h.values),
		"root", h.nodes[0].Name,
		"elapsed", time.Since(began))
	return h, nil
}

// SourcePath returns the file the hive was opened from, if any.
func (h *Hive) SourcePath() string { return h.path }

// Info returns the base block metadata.
func (h *Hive) Info() types.HiveInfo { return h.info }

// Root returns the id of the root key.
func (h *Hive) Root() NodeID { return 0 }

// Node returns the node with the given id, or nil when id is out of range.
func (h *Hive) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(h.nodes) {
		return nil
	}
	return &h.nodes[id]
}

// Value returns the value with the given id, or nil when id is out of range.
func (h *Hive) Value(id ValueID) *Value {
	if id < 0 || int(id) >= len(h.values) {
		return nil
	}
	return &h.values[id]
}

// Parent returns the parent of id; ok is false for the root.
func (h *Hive) Parent(id NodeID) (NodeID, bool) {
	n := h.Node(id)
	if n == nil || n.Parent == NoParent {
		return NoParent, false
	}
	return n.Parent, true
}

// Children returns the child ids of id in on-disk order.
func (h *Hive) Children(id NodeID) []NodeID {
	if n := h.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// Values returns the values of id in on-disk order.
func (h *Hive) Values(id NodeID) []*Value {
	n := h.Node(id)
	if n == nil {
		return nil
	}
	out := make([]*Value, len(n.Values))
	for i, vid := range n.Values {
		out[i] = &h.values[vid]
	}
	return out
}

// Stats counts decoded keys and values and reports the deepest key level.
func (h *Hive) Stats() types.TreeStats {
	s := types.TreeStats{Keys: len(h.nodes), Values: len(h.values)}
	for i := range h.nodes {
		s.MaxDepth = max(s.MaxDepth, h.nodes[i].Depth)
	}
	return s
}
