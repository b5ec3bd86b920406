package hive

import "errors"

// SkipChildren may be returned by a WalkFunc to skip the children of the
// node just visited.
var SkipChildren = errors.New("skip children")

// WalkFunc is called once per node in depth-first pre-order. path is the
// node's path as returned by (*Hive).Path.
type WalkFunc func(id NodeID, path string, n *Node) error

// Walk visits start and its descendants. Walking stops at the first error
// other than SkipChildren, which is returned.
func (h *Hive) Walk(start NodeID, fn WalkFunc) error {
	if h.Node(start) == nil {
		return nil
	}
	err := h.walk(start, h.Path(start), fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func (h *Hive) walk(id NodeID, path string, fn WalkFunc) error {
	n := &h.nodes[id]
	if err := fn(id, path, n); err != nil {
		return err
	}
	for _, c := range n.Children {
		childPath := h.nodes[c].Name
		if path != "" {
			childPath = path + PathSeparator + childPath
		}
		if err := h.walk(c, childPath, fn); err != nil && !errors.Is(err, SkipChildren) {
			return err
		}
	}
	return nil
}
