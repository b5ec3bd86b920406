package hive

import (
	"fmt"

	"github.com/joshuapare/hiveparse/internal/buf"
	"github.com/joshuapare/hiveparse/internal/format"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// isLeaf reports whether sig names an accepted leaf: "lf" or "lh". Both
// use 8-byte entries; "li" leaves are rejected.
func isLeaf(sig string) bool {
	return sig == string(format.LFSignature) || sig == string(format.LHSignature)
}

// decodeChildren resolves the subkey index at off and decodes every child of
// parent in on-disk order. An "ri" record holds offsets of leaves; leaves hold
// offsets of "nk" records.
func (d *decoder) decodeChildren(parent NodeID, off int32, depth int) error {
	if off == format.NoOffset {
		return nil
	}
	start, err := d.enterBlock(off)
	if err != nil {
		return err
	}
	sig, err := d.readSignature()
	if err != nil {
		return err
	}

	if sig == string(format.RISignature) {
		return d.decodeRootIndex(parent, start, depth)
	}
	if isLeaf(sig) {
		return d.decodeLeaf(parent, start, depth)
	}
	e := types.MalformedRecord("child index signature", start)
	e.Msg = fmt.Sprintf("unknown child index signature %q at 0x%x", sig, start)
	return e
}

func (d *decoder) decodeRootIndex(parent NodeID, start, depth int) error {
	count, listStart, err := d.readListHeader("ri", start, format.RIEntrySize)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := d.c.Seek(listStart + i*format.RIEntrySize); err != nil {
			return err
		}
		leafOff, err := d.c.ReadInt32()
		if err != nil {
			return err
		}
		leafStart, err := d.enterBlock(leafOff)
		if err != nil {
			return err
		}
		sig, err := d.readSignature()
		if err != nil {
			return err
		}
		if !isLeaf(sig) {
			e := types.MalformedRecord("ri", start)
			e.Msg = fmt.Sprintf("ri record at 0x%x points at %q record at 0x%x", start, sig, leafStart)
			return e
		}
		if err := d.decodeLeaf(parent, leafStart, depth); err != nil {
			return err
		}
	}
	return d.c.Seek(listStart + count*format.RIEntrySize)
}

// decodeLeaf decodes the children listed by the "lf" or "lh" record at start.
// The cursor sits just past the signature on entry and just past the last
// entry on return. The second half of each entry is a name hint or hash and
// is not read.
func (d *decoder) decodeLeaf(parent NodeID, start, depth int) error {
	count, listStart, err := d.readListHeader("leaf", start, format.LFEntrySize)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := d.c.Seek(listStart + i*format.LFEntrySize); err != nil {
			return err
		}
		childOff, err := d.c.ReadInt32()
		if err != nil {
			return err
		}
		child, err := d.decodeNode(childOff, parent, depth+1)
		if err != nil {
			return err
		}
		d.nodes[parent].Children = append(d.nodes[parent].Children, child)
	}
	return d.c.Seek(listStart + count*format.LFEntrySize)
}

// readListHeader reads the int16 entry count that follows a list signature
// and checks that every entry lies inside the content.
func (d *decoder) readListHeader(record string, start, entrySize int) (int, int, error) {
	count, err := d.c.ReadInt16()
	if err != nil {
		return 0, 0, err
	}
	if count < 0 {
		return 0, 0, types.MalformedRecord(record, start)
	}
	listStart := d.c.Pos()
	if _, err := buf.CheckListBounds(d.c.Len(), listStart, int(count), entrySize); err != nil {
		return 0, 0, &types.Error{
			Kind:   types.ErrKindOutOfBounds,
			Msg:    fmt.Sprintf("%s record at 0x%x", record, start),
			Offset: start,
			Err:    err,
		}
	}
	return int(count), listStart, nil
}
