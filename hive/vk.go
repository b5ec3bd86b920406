package hive

import (
	"fmt"

	"github.com/joshuapare/hiveparse/internal/buf"
	"github.com/joshuapare/hiveparse/internal/format"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// decodeValueList decodes count values whose record offsets are stored in the
// list at off. A list offset of -1 means the key has no values, whatever the
// declared count.
func (d *decoder) decodeValueList(off int32, count int32) ([]ValueID, error) {
	if off == format.NoOffset || count == 0 {
		return nil, nil
	}
	start, err := d.enterBlock(off)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, &types.Error{
			Kind:   types.ErrKindMalformedRecord,
			Msg:    fmt.Sprintf("negative value count %d for list at 0x%x", count, start),
			Record: "value list",
			Offset: start,
		}
	}
	if _, err := buf.CheckListBounds(d.c.Len(), start, int(count), format.OffsetFieldSize); err != nil {
		return nil, &types.Error{
			Kind:   types.ErrKindOutOfBounds,
			Msg:    fmt.Sprintf("value list at 0x%x", start),
			Offset: start,
			Err:    err,
		}
	}

	ids := make([]ValueID, 0, count)
	for i := 0; i < int(count); i++ {
		if err := d.c.Seek(start + i*format.OffsetFieldSize); err != nil {
			return nil, err
		}
		vkOff, err := d.c.ReadInt32()
		if err != nil {
			return nil, err
		}
		v, err := d.decodeValue(vkOff)
		if err != nil {
			return nil, err
		}
		ids = append(ids, ValueID(len(d.values)))
		d.values = append(d.values, v)
	}
	return ids, nil
}

// decodeValue decodes the "vk" record stored at off.
//
//	Offset  Size  Field
//	------  ----  ------------------------------
//	 0x00    2    "vk"
//	 0x02    2    name length
//	 0x04    4    data length (< 5 means inline)
//	 0x08    4    inline data or data cell offset
//	 0x0C    4    type
//	 0x10    2    flags (0x0001 = 8-bit name)
//	 0x12    2    spare
//	 0x14    n    name
func (d *decoder) decodeValue(off int32) (Value, error) {
	var v Value
	start, err := d.enterBlock(off)
	if err != nil {
		return v, err
	}
	sig, err := d.readSignature()
	if err != nil {
		return v, err
	}
	if sig != string(format.VKSignature) {
		return v, types.MalformedRecord("vk", start)
	}
	v.Offset = start

	if v.NameLength, err = d.c.ReadInt16(); err != nil {
		return v, err
	}
	if v.DataLength, err = d.c.ReadInt32(); err != nil {
		return v, err
	}
	field, err := d.c.ReadBytes(format.VKInlineSize)
	if err != nil {
		return v, err
	}
	typ, err := d.c.ReadInt32()
	if err != nil {
		return v, err
	}
	v.Type = types.RegType(typ)
	flags, err := d.c.ReadUint16()
	if err != nil {
		return v, err
	}
	if err := d.c.Skip(2); err != nil {
		return v, err
	}

	if v.NameLength < 0 {
		return v, types.MalformedRecord("vk", start)
	}
	raw, err := d.c.ReadBytes(int(v.NameLength))
	if err != nil {
		return v, err
	}
	if len(raw) == 0 {
		v.Name = format.DefaultValueName
	} else {
		v.Name = format.DecodeName(raw, flags&format.VKFlagASCIIName != 0)
	}

	if v.DataLength < format.VKInlineThreshold {
		v.Data = field
		v.Inline = true
		return v, nil
	}
	dataOff := buf.I32LE(field)
	if v.DataLength > format.DBBlockSize {
		data, ok, err := d.readBigData(dataOff, int(v.DataLength))
		if err != nil {
			return v, err
		}
		if ok {
			v.Data = data
			v.Segmented = true
			return v, nil
		}
	}
	if _, err := d.enterBlock(dataOff); err != nil {
		return v, err
	}
	if v.Data, err = d.c.ReadBytes(int(v.DataLength)); err != nil {
		return v, err
	}
	return v, nil
}
