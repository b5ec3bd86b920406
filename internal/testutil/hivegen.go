// Package testutil builds synthetic registry hives for tests. The images use
// the real on-disk layout (REGF base block, one HBIN, 8-byte aligned cells
// with negative size prefixes) so the decoder reads them exactly as it reads
// hives written by Windows.
package testutil

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/joshuapare/hiveparse/internal/format"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// Index selects the child-index encoding written for a key's subkeys.
type Index int

const (
	IndexLF Index = iota // fast leaf
	IndexLH              // hash leaf
	IndexLI              // index leaf (offsets only); rejected by the decoder
	IndexRI              // root index over LF leaves
)

// Key describes one key to lay out.
type Key struct {
	Name      string
	Class     []byte
	UTF16Name bool
	Timestamp time.Time
	Index     Index
	RIChunk   int // subkeys per leaf under IndexRI; 0 means 2
	Values    []Value
	Subkeys   []*Key
}

// Value describes one value to lay out. Data of 4 bytes or fewer is stored
// inline in the record.
type Value struct {
	Name      string
	Type      types.RegType
	Data      []byte
	UTF16Name bool
	InlineBit bool   // set the high bit of the length word for inline data
	Segmented bool   // store data longer than one block through a "db" record
	Declared  *int32 // overrides the declared data length when set
}

// Len returns a pointer for Value.Declared.
func Len(n int32) *int32 { return &n }

// KeyLayout records where a key's cells landed, as offsets relative to the
// end of the base block (the form stored inside the hive).
type KeyLayout struct {
	NK         int32
	ChildIndex int32
	ValueList  int32
	Class      int32
	Leaves     []int32 // leaf cells under a root index
}

// Image is a finished hive plus the cell map tests use to corrupt it.
type Image struct {
	Bytes  []byte
	Keys   map[string]KeyLayout // by path, root = ""
	Values map[string]int32     // by "path\name", or "name" on the root
}

// Abs converts a stored offset to the absolute position of the cell's
// payload (past the 4-byte size prefix).
func (im *Image) Abs(rel int32) int {
	return format.HeaderSize + int(rel) + format.CellHeaderSize
}

// PutI32 overwrites an int32 at absolute position pos.
func (im *Image) PutI32(pos int, v int32) {
	format.PutI32(im.Bytes, pos, v)
}

// PutBytes overwrites bytes at absolute position pos.
func (im *Image) PutBytes(pos int, b []byte) {
	copy(im.Bytes[pos:], b)
}

// ZeroFlags clears the flags word of every key and value record, leaving
// name bytes untouched.
func (im *Image) ZeroFlags() {
	for _, k := range im.Keys {
		format.PutU16(im.Bytes, im.Abs(k.NK)+format.NKFlagsOffset, 0)
	}
	for _, v := range im.Values {
		format.PutU16(im.Bytes, im.Abs(v)+format.VKFlagsOffset, 0)
	}
}

// Path joins key names with the hive path separator.
func Path(parts ...string) string {
	return strings.Join(parts, `\`)
}

type builder struct {
	data []byte // HBIN area; index 0 is the "hbin" signature at 0x1000
	img  *Image
}

// Build lays out root and its descendants as a complete hive image.
func Build(root *Key) *Image {
	b := &builder{
		data: make([]byte, format.HBINHeaderSize),
		img: &Image{
			Keys:   make(map[string]KeyLayout),
			Values: make(map[string]int32),
		},
	}
	rootRel := b.writeKey(root, "", format.NoOffset, true)

	hbinSize := format.AlignHBIN(len(b.data))
	b.data = append(b.data, make([]byte, hbinSize-len(b.data))...)
	copy(b.data, format.HBINSignature)
	format.PutU32(b.data, 0x04, 0)
	format.PutU32(b.data, 0x08, uint32(hbinSize))

	head := make([]byte, format.HeaderSize)
	copy(head, format.REGFSignature)
	format.PutU32(head, format.REGFPrimarySeqOffset, 1)
	format.PutU32(head, format.REGFSecondarySeqOffset, 1)
	format.PutU64(head, format.REGFTimeStampOffset, format.TimeToFiletime(root.Timestamp))
	format.PutU32(head, format.REGFMajorVersionOffset, 1)
	format.PutU32(head, format.REGFMinorVersionOffset, 5)
	format.PutU32(head, format.REGFFormatOffset, 1)
	format.PutI32(head, format.REGFRootCellOffset, rootRel)
	format.PutU32(head, format.REGFDataSizeOffset, uint32(hbinSize))
	format.PutU32(head, format.REGFClusterOffset, 1)

	b.img.Bytes = append(head, b.data...)
	return b.img
}

// alloc reserves an in-use cell with room for n payload bytes and returns its
// stored (relative) offset.
func (b *builder) alloc(n int) int32 {
	size := format.Align8(n + format.CellHeaderSize)
	rel := len(b.data)
	b.data = append(b.data, make([]byte, size)...)
	format.PutI32(b.data, rel, int32(-size))
	return int32(rel)
}

// payload returns the cell body at rel. Only valid until the next alloc.
func (b *builder) payload(rel int32) []byte {
	return b.data[int(rel)+format.CellHeaderSize:]
}

func (b *builder) writeKey(k *Key, path string, parent int32, root bool) int32 {
	name, compressed := encodeName(k.Name, k.UTF16Name)
	layout := KeyLayout{ChildIndex: format.NoOffset, ValueList: format.NoOffset, Class: format.NoOffset}
	layout.NK = b.alloc(format.NKNameOffset + len(name))

	if len(k.Class) > 0 {
		layout.Class = b.alloc(len(k.Class))
		copy(b.payload(layout.Class), k.Class)
	}

	children := make([]int32, len(k.Subkeys))
	for i, sub := range k.Subkeys {
		children[i] = b.writeKey(sub, join(path, sub.Name), layout.NK, false)
	}
	if len(children) > 0 {
		layout.ChildIndex, layout.Leaves = b.writeIndex(k, children)
	}

	if len(k.Values) > 0 {
		rels := make([]int32, len(k.Values))
		for i, v := range k.Values {
			rels[i] = b.writeValue(v)
			b.img.Values[join(path, v.Name)] = rels[i]
		}
		layout.ValueList = b.alloc(len(rels) * format.OffsetFieldSize)
		p := b.payload(layout.ValueList)
		for i, r := range rels {
			format.PutI32(p, i*format.OffsetFieldSize, r)
		}
	}

	var flags uint16
	if compressed {
		flags |= format.NKFlagCompressedName
	}
	if root {
		flags |= format.NKRootFlags
	}

	p := b.payload(layout.NK)
	copy(p, format.NKSignature)
	format.PutU16(p, format.NKFlagsOffset, flags)
	format.PutU64(p, 0x04, format.TimeToFiletime(k.Timestamp))
	format.PutI32(p, 0x10, parent)
	format.PutU32(p, 0x14, uint32(len(k.Subkeys)))
	format.PutI32(p, 0x1C, layout.ChildIndex)
	format.PutI32(p, 0x20, format.NoOffset)
	format.PutU32(p, 0x24, uint32(len(k.Values)))
	format.PutI32(p, 0x28, layout.ValueList)
	format.PutI32(p, 0x2C, format.NoOffset)
	format.PutI32(p, 0x30, layout.Class)
	format.PutU16(p, format.NKNameLenOffset, uint16(len(name)))
	format.PutU16(p, format.NKNameLenOffset+2, uint16(len(k.Class)))
	copy(p[format.NKNameOffset:], name)

	b.img.Keys[path] = layout
	return layout.NK
}

func (b *builder) writeIndex(k *Key, children []int32) (int32, []int32) {
	switch k.Index {
	case IndexLI:
		return b.writeLeaf(format.LISignature, format.LIEntrySize, children, k.Subkeys), nil
	case IndexLH:
		return b.writeLeaf(format.LHSignature, format.LFEntrySize, children, k.Subkeys), nil
	case IndexRI:
		chunk := k.RIChunk
		if chunk <= 0 {
			chunk = 2
		}
		var leaves []int32
		for start := 0; start < len(children); start += chunk {
			end := min(start+chunk, len(children))
			leaves = append(leaves, b.writeLeaf(format.LFSignature, format.LFEntrySize, children[start:end], k.Subkeys[start:end]))
		}
		ri := b.alloc(format.ListHeaderSize + len(leaves)*format.RIEntrySize)
		p := b.payload(ri)
		copy(p, format.RISignature)
		format.PutU16(p, 2, uint16(len(leaves)))
		for i, l := range leaves {
			format.PutI32(p, format.ListHeaderSize+i*format.RIEntrySize, l)
		}
		return ri, leaves
	default:
		return b.writeLeaf(format.LFSignature, format.LFEntrySize, children, k.Subkeys), nil
	}
}

func (b *builder) writeLeaf(sig []byte, entry int, children []int32, keys []*Key) int32 {
	rel := b.alloc(format.ListHeaderSize + len(children)*entry)
	p := b.payload(rel)
	copy(p, sig)
	format.PutU16(p, 2, uint16(len(children)))
	for i, c := range children {
		off := format.ListHeaderSize + i*entry
		format.PutI32(p, off, c)
		if entry == format.LFEntrySize {
			copy(p[off+4:off+8], nameHint(keys[i].Name))
		}
	}
	return rel
}

func (b *builder) writeValue(v Value) int32 {
	name, compressed := encodeName(v.Name, v.UTF16Name)
	vk := b.alloc(format.VKNameOffset + len(name))

	var field [format.VKInlineSize]byte
	length := uint32(len(v.Data))
	if len(v.Data) <= format.VKInlineSize {
		copy(field[:], v.Data)
		if v.InlineBit {
			length |= 0x80000000
		}
	} else if v.Segmented && len(v.Data) > format.DBBlockSize {
		binary.LittleEndian.PutUint32(field[:], uint32(b.writeBigData(v.Data)))
	} else {
		data := b.alloc(len(v.Data))
		copy(b.payload(data), v.Data)
		binary.LittleEndian.PutUint32(field[:], uint32(data))
	}
	if v.Declared != nil {
		length = uint32(*v.Declared)
	}

	p := b.payload(vk)
	copy(p, format.VKSignature)
	format.PutU16(p, 0x02, uint16(len(name)))
	format.PutU32(p, 0x04, length)
	copy(p[format.VKDataOffOffset:], field[:])
	format.PutU32(p, 0x0C, uint32(v.Type))
	if compressed {
		format.PutU16(p, format.VKFlagsOffset, format.VKFlagASCIIName)
	}
	copy(p[format.VKNameOffset:], name)
	return vk
}

// writeBigData splits data into block-sized segments behind a "db" record
// and returns the record's offset.
func (b *builder) writeBigData(data []byte) int32 {
	var segs []int32
	for start := 0; start < len(data); start += format.DBBlockSize {
		end := min(start+format.DBBlockSize, len(data))
		seg := b.alloc(end - start)
		copy(b.payload(seg), data[start:end])
		segs = append(segs, seg)
	}
	list := b.alloc(len(segs) * format.OffsetFieldSize)
	p := b.payload(list)
	for i, s := range segs {
		format.PutI32(p, i*format.OffsetFieldSize, s)
	}
	db := b.alloc(format.DBHeaderSize)
	p = b.payload(db)
	copy(p, format.DBSignature)
	format.PutU16(p, 2, uint16(len(segs)))
	format.PutI32(p, 4, list)
	return db
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return Path(path, name)
}

func encodeName(name string, utf16 bool) ([]byte, bool) {
	if utf16 {
		return format.EncodeUTF16LE(name), false
	}
	return []byte(name), true
}

// nameHint is the first four name bytes, as Windows stores in LF entries.
func nameHint(name string) []byte {
	var h [4]byte
	copy(h[:], name)
	return h[:]
}
