package hive

import (
	"fmt"

	"github.com/joshuapare/hiveparse/internal/buf"
	"github.com/joshuapare/hiveparse/internal/format"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// readBigData assembles a value stored through a "db" record. ok is false
// when the cell at off is not a "db" record, in which case the caller reads
// the data directly.
//
//	Offset  Size  Field
//	------  ----  ------------------------------
//	 0x00    2    "db"
//	 0x02    2    segment count
//	 0x04    4    segment list offset
//	 0x08    4    reserved
func (d *decoder) readBigData(off int32, length int) ([]byte, bool, error) {
	start, err := d.enterBlock(off)
	if err != nil {
		return nil, false, err
	}
	sig, err := d.readSignature()
	if err != nil {
		return nil, false, err
	}
	if sig != string(format.DBSignature) {
		return nil, false, nil
	}

	count, err := d.c.ReadUint16()
	if err != nil {
		return nil, false, err
	}
	listOff, err := d.c.ReadInt32()
	if err != nil {
		return nil, false, err
	}
	listStart, err := d.enterBlock(listOff)
	if err != nil {
		return nil, false, err
	}
	if _, err := buf.CheckListBounds(d.c.Len(), listStart, int(count), format.OffsetFieldSize); err != nil {
		return nil, false, &types.Error{
			Kind:   types.ErrKindOutOfBounds,
			Msg:    fmt.Sprintf("db segment list at 0x%x", listStart),
			Offset: listStart,
			Err:    err,
		}
	}

	data := make([]byte, 0, length)
	for i := 0; i < int(count) && len(data) < length; i++ {
		if err := d.c.Seek(listStart + i*format.OffsetFieldSize); err != nil {
			return nil, false, err
		}
		segOff, err := d.c.ReadInt32()
		if err != nil {
			return nil, false, err
		}
		if _, err := d.enterBlock(segOff); err != nil {
			return nil, false, err
		}
		seg, err := d.c.ReadBytes(min(length-len(data), format.DBBlockSize))
		if err != nil {
			return nil, false, err
		}
		data = append(data, seg...)
	}
	if len(data) != length {
		e := types.MalformedRecord("db", start)
		e.Msg = fmt.Sprintf("db record at 0x%x holds %d of %d bytes", start, len(data), length)
		return nil, false, e
	}
	return data, true, nil
}
