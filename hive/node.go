package hive

import (
	"time"

	"github.com/joshuapare/hiveparse/internal/buf"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// NodeID addresses a Node in its Hive's arena.
type NodeID int

// ValueID addresses a Value in its Hive's arena.
type ValueID int

// NoParent is the parent of the root node.
const NoParent NodeID = -1

// Node is a decoded "nk" record.
type Node struct {
	Name      string
	Timestamp time.Time // last write, UTC
	Flags     uint16
	IsRootKey bool

	SubkeyCount      int32
	ValueCount       int32
	ParentOffset     int32
	ChildIndexOffset int32 // "lf"/"lh"/"ri" record, or -1
	ValueListOffset  int32
	SecurityOffset   int32
	ClassnameOffset  int32
	NameLength       int16
	ClassnameLength  int16
	Classname        []byte

	// Offset is the absolute position of the "nk" signature.
	Offset int

	Parent   NodeID
	Children []NodeID
	Values   []ValueID
	Depth    int
}

// Value is a decoded "vk" record.
type Value struct {
	Name       string
	NameLength int16
	DataLength int32 // as declared; may carry the inline high bit
	Type       types.RegType
	Data       []byte
	Inline     bool
	Segmented  bool // data assembled from a "db" record's segments

	// Offset is the absolute position of the "vk" signature.
	Offset int
}

// Uint32 returns the first four data bytes as a little-endian integer.
func (v *Value) Uint32() (uint32, bool) {
	if len(v.Data) < 4 {
		return 0, false
	}
	return buf.U32LE(v.Data), true
}

// Payload returns the data bytes the value actually holds: inline data is
// trimmed to its declared length with the inline high bit masked off.
func (v *Value) Payload() []byte {
	if !v.Inline {
		return v.Data
	}
	n := int(uint32(v.DataLength) &^ 0x80000000)
	if n > len(v.Data) {
		n = len(v.Data)
	}
	return v.Data[:n]
}
