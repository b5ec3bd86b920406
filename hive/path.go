package hive

import (
	"strings"

	"github.com/joshuapare/hiveparse/pkg/types"
)

// PathSeparator separates key names in a path.
const PathSeparator = `\`

// ResolveNode walks path from the root, matching each segment exactly
// against child names in on-disk order. The walk stops at the first empty
// segment, so "" and a trailing separator both resolve to the node reached
// so far.
func (h *Hive) ResolveNode(path string) (NodeID, error) {
	cur := h.Root()
	for _, seg := range strings.Split(path, PathSeparator) {
		if seg == "" {
			break
		}
		next, ok := h.child(cur, seg)
		if !ok {
			return NoParent, types.PathNotFound(seg)
		}
		cur = next
	}
	return cur, nil
}

// ResolveValue splits path at its last separator into a key path and a value
// name. A missing key is an error; a missing value is reported through ok.
// The default value can be addressed by its reported name, "Default".
func (h *Hive) ResolveValue(path string) (*Value, bool, error) {
	keyPath, name := "", path
	if i := strings.LastIndex(path, PathSeparator); i >= 0 {
		keyPath, name = path[:i], path[i+1:]
	}
	id, err := h.ResolveNode(keyPath)
	if err != nil {
		return nil, false, err
	}
	for _, vid := range h.nodes[id].Values {
		if h.values[vid].Name == name {
			return &h.values[vid], true, nil
		}
	}
	return nil, false, nil
}

// Path returns the backslash-joined key names from the root's first child
// down to id. The root itself has an empty path.
func (h *Hive) Path(id NodeID) string {
	var parts []string
	for n := h.Node(id); n != nil && n.Parent != NoParent; n = h.Node(n.Parent) {
		parts = append(parts, n.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, PathSeparator)
}

func (h *Hive) child(id NodeID, name string) (NodeID, bool) {
	for _, c := range h.nodes[id].Children {
		if h.nodes[c].Name == name {
			return c, true
		}
	}
	return NoParent, false
}
