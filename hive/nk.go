package hive

import (
	"fmt"
	"math"

	"github.com/joshuapare/hiveparse/internal/format"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// decodeNode decodes the "nk" record stored at off, then its children and
// values, and returns the new node's id. Ids are assigned in pre-order.
//
//	Offset  Size  Field
//	------  ----  ------------------------------
//	 0x00    2    "nk"
//	 0x02    2    flags (low byte 0x2C on the root)
//	 0x04    8    last write FILETIME
//	 0x0C    4    access bits
//	 0x10    4    parent offset
//	 0x14    4    subkey count
//	 0x18    4    volatile subkey count
//	 0x1C    4    subkey index offset
//	 0x20    4    volatile subkey index offset
//	 0x24    4    value count
//	 0x28    4    value list offset
//	 0x2C    4    security offset
//	 0x30    4    class name offset
//	 0x48    2    name length
//	 0x4A    2    class name length
//	 0x4C    n    name
func (d *decoder) decodeNode(off int32, parent NodeID, depth int) (NodeID, error) {
	start, err := d.enterBlock(off)
	if err != nil {
		return 0, err
	}
	if depth > d.maxDepth {
		return 0, d.depthError(depth, start)
	}
	if uint64(start) > math.MaxUint32 || d.visited.Contains(uint32(start)) {
		return 0, d.cycleError(start)
	}
	d.visited.Add(uint32(start))

	n, err := d.readNK(start)
	if err != nil {
		return 0, err
	}
	n.Parent = parent
	n.Depth = depth

	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, n)

	if err := d.decodeChildren(id, n.ChildIndexOffset, depth); err != nil {
		return 0, err
	}
	if got := len(d.nodes[id].Children); got != int(n.SubkeyCount) {
		return 0, &types.Error{
			Kind:   types.ErrKindMalformedRecord,
			Msg:    fmt.Sprintf("nk record at 0x%x declares %d subkeys, decoded %d", start, n.SubkeyCount, got),
			Record: "nk",
			Offset: start,
		}
	}

	vals, err := d.decodeValueList(n.ValueListOffset, n.ValueCount)
	if err != nil {
		return 0, err
	}
	d.nodes[id].Values = vals
	return id, nil
}

// readNK decodes the fixed fields, name, and class name of the record at start.
func (d *decoder) readNK(start int) (Node, error) {
	var n Node
	sig, err := d.readSignature()
	if err != nil {
		return n, err
	}
	if sig != string(format.NKSignature) {
		return n, types.MalformedRecord("nk", start)
	}
	n.Offset = start

	if n.Flags, err = d.c.ReadUint16(); err != nil {
		return n, err
	}
	n.IsRootKey = byte(n.Flags) == format.NKRootFlags

	ts, err := d.c.ReadInt64()
	if err != nil {
		return n, err
	}
	n.Timestamp = format.FiletimeToTime(uint64(ts))

	if err := d.c.Skip(4); err != nil {
		return n, err
	}
	if n.ParentOffset, err = d.c.ReadInt32(); err != nil {
		return n, err
	}
	if n.SubkeyCount, err = d.c.ReadInt32(); err != nil {
		return n, err
	}
	if err := d.c.Skip(4); err != nil {
		return n, err
	}
	if n.ChildIndexOffset, err = d.c.ReadInt32(); err != nil {
		return n, err
	}
	if err := d.c.Skip(4); err != nil {
		return n, err
	}
	if n.ValueCount, err = d.c.ReadInt32(); err != nil {
		return n, err
	}
	if n.ValueListOffset, err = d.c.ReadInt32(); err != nil {
		return n, err
	}
	if n.SecurityOffset, err = d.c.ReadInt32(); err != nil {
		return n, err
	}
	if n.ClassnameOffset, err = d.c.ReadInt32(); err != nil {
		return n, err
	}

	if err := d.c.Seek(start + format.NKNameLenOffset); err != nil {
		return n, err
	}
	if n.NameLength, err = d.c.ReadInt16(); err != nil {
		return n, err
	}
	if n.ClassnameLength, err = d.c.ReadInt16(); err != nil {
		return n, err
	}
	if n.NameLength < 0 {
		return n, types.MalformedRecord("nk", start)
	}
	raw, err := d.c.ReadBytes(int(n.NameLength))
	if err != nil {
		return n, err
	}
	n.Name = format.DecodeName(raw, n.Flags&format.NKFlagCompressedName != 0)

	if n.ClassnameOffset != format.NoOffset && n.ClassnameLength > 0 {
		if _, err := d.enterBlock(n.ClassnameOffset); err != nil {
			return n, err
		}
		if n.Classname, err = d.c.ReadBytes(int(n.ClassnameLength)); err != nil {
			return n, err
		}
	}
	return n, nil
}
