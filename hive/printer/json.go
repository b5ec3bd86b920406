package printer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/joshuapare/hiveparse/hive"
	"github.com/joshuapare/hiveparse/pkg/types"
)

const (
	DefaultKeyNameSymbol = "(Default)"
)

// jsonKey represents a registry key in JSON format.
type jsonKey struct {
	Name      string      `json:"name"`
	Path      string      `json:"path"`
	LastWrite string      `json:"last_write,omitempty"`
	Class     string      `json:"class,omitempty"`
	Subkeys   int         `json:"subkeys"`
	Values    int         `json:"values"`
	ValueData []jsonValue `json:"value_data,omitempty"`
	Children  []jsonKey   `json:"children,omitempty"`
}

// jsonValue represents a registry value in JSON format.
type jsonValue struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Data any    `json:"data"`
}

func (p *Printer) buildKey(id hive.NodeID, depth int, recursive bool) jsonKey {
	n := p.h.Node(id)
	key := jsonKey{
		Name:    n.Name,
		Path:    p.h.Path(id),
		Subkeys: len(n.Children),
		Values:  len(n.Values),
	}
	if p.opts.ShowTimestamps {
		key.LastWrite = n.Timestamp.Format("2006-01-02T15:04:05Z07:00")
	}
	if len(n.Classname) > 0 {
		key.Class = hex.EncodeToString(n.Classname)
	}
	if p.opts.ShowValues {
		for _, v := range p.h.Values(id) {
			key.ValueData = append(key.ValueData, p.buildValue(v))
		}
	}
	if recursive && !p.depthExceeded(depth+1) {
		for _, child := range n.Children {
			key.Children = append(key.Children, p.buildKey(child, depth+1, true))
		}
	}
	return key
}

func (p *Printer) buildValue(v *hive.Value) jsonValue {
	out := jsonValue{Name: displayName(v), Data: p.decodeValueJSON(v)}
	if p.opts.ShowValueTypes {
		out.Type = v.Type.String()
	}
	return out
}

// decodeValueJSON decodes a value for JSON output.
func (p *Printer) decodeValueJSON(v *hive.Value) any {
	switch v.Type {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		return valueString(v)

	case types.REG_DWORD, types.REG_DWORD_BE:
		if n, ok := valueDWORD(v); ok {
			return n
		}

	case types.REG_QWORD:
		if n, ok := valueQWORD(v); ok {
			return n
		}

	case types.REG_MULTI_SZ:
		return valueStrings(v)
	}

	data := v.Payload()
	shown, cut := p.clip(data)
	s := hex.EncodeToString(shown)
	if cut {
		s += fmt.Sprintf(" (truncated, %d total bytes)", len(data))
	}
	return s
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.w, "%s\n", data)
	return err
}
