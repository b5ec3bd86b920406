package hive

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hiveparse/internal/format"
	"github.com/joshuapare/hiveparse/internal/testutil"
	"github.com/joshuapare/hiveparse/pkg/types"
)

func TestVK_SmallData_Inline(t *testing.T) {
	h, _ := openSample(t)
	v, ok, err := h.ResolveValue(`Software\Vendor\Small`)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, int32(3), v.DataLength)
	require.True(t, v.Inline)
	// all four bytes of the record's data field, not a fetched cell
	require.Equal(t, []byte{1, 2, 3, 0xEE}, v.Data)
	require.Equal(t, types.REG_BINARY, v.Type)
}

func TestVK_ExternalData_Cell(t *testing.T) {
	h, img := openSample(t)
	v, ok, err := h.ResolveValue(`Software\Vendor\Big`)
	require.NoError(t, err)
	require.True(t, ok)

	require.False(t, v.Inline)
	require.Equal(t, int32(100), v.DataLength)
	require.Len(t, v.Data, 100)

	vkPos := img.Abs(img.Values[`Software\Vendor\Big`])
	require.Equal(t, vkPos, v.Offset)
	dataRel := int32(binary.LittleEndian.Uint32(img.Bytes[vkPos+format.VKDataOffOffset:]))
	dataPos := format.HeaderSize + int(dataRel) + format.CellHeaderSize
	require.Equal(t, img.Bytes[dataPos:dataPos+100], v.Data)
	require.Equal(t, bigData, v.Data)
}

func TestVK_DefaultName(t *testing.T) {
	h, _ := openSample(t)
	v, ok, err := h.ResolveValue(`Software\Vendor\Default`)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int16(0), v.NameLength)
	require.Equal(t, types.REG_SZ, v.Type)
	require.Equal(t, []byte("h\x00e\x00l\x00l\x00o\x00"), v.Data)
}

func TestVK_InlineHighBit(t *testing.T) {
	h, _ := openSample(t)
	v, ok, err := h.ResolveValue(`Software\Vendor\Flagged`)
	require.NoError(t, err)
	require.True(t, ok)
	require.Negative(t, v.DataLength)
	require.True(t, v.Inline)

	n, ok := v.Uint32()
	require.True(t, ok)
	require.Equal(t, uint32(1), n)
}

func TestVK_ValuesInOrder(t *testing.T) {
	h, _ := openSample(t)
	id, err := h.ResolveNode(`Software\Vendor`)
	require.NoError(t, err)

	var names []string
	for _, v := range h.Values(id) {
		names = append(names, v.Name)
	}
	require.Equal(t, []string{"Small", "Big", "Default", "Flagged"}, names)
}

func TestVK_BadSignature(t *testing.T) {
	img := testutil.Build(sampleKey())
	pos := img.Abs(img.Values[`Software\Vendor\Big`])
	img.PutBytes(pos, []byte("nk"))

	h, err := OpenBytes(img.Bytes)
	require.Nil(t, h)
	require.ErrorIs(t, err, types.ErrMalformedRecord)

	var perr *types.Error
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "vk", perr.Record)
}

func TestVK_DataPastEnd(t *testing.T) {
	img := testutil.Build(sampleKey())
	pos := img.Abs(img.Values[`Software\Vendor\Big`])
	img.PutI32(pos+4, 0x7FFFFFF0)

	h, err := OpenBytes(img.Bytes)
	require.Nil(t, h)
	require.ErrorIs(t, err, types.ErrOutOfBounds)
}

func TestVK_ListMinusOneIgnoresCount(t *testing.T) {
	img := testutil.Build(sampleKey())
	img.PutI32(img.Abs(img.Keys[`Software\Vendor`].NK)+0x28, format.NoOffset)

	h, err := OpenBytes(img.Bytes)
	require.NoError(t, err)
	n := mustResolve(t, h, `Software\Vendor`)
	require.Empty(t, n.Values)
	require.Equal(t, int32(4), n.ValueCount)
}

func TestValue_Uint32Short(t *testing.T) {
	v := &Value{Data: []byte{1, 2}}
	_, ok := v.Uint32()
	require.False(t, ok)
}

func TestValue_Payload(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want []byte
	}{
		{"inline", Value{Inline: true, DataLength: 3, Data: []byte{1, 2, 3, 4}}, []byte{1, 2, 3}},
		{"inline high bit", Value{Inline: true, DataLength: -0x7FFFFFFC, Data: []byte{1, 2, 3, 4}}, []byte{1, 2, 3, 4}},
		{"inline empty", Value{Inline: true, DataLength: 0, Data: []byte{1, 2, 3, 4}}, []byte{}},
		{"cell", Value{DataLength: 6, Data: []byte{1, 2, 3, 4, 5, 6}}, []byte{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.v.Payload())
		})
	}
}

func TestVK_BigData_Segments(t *testing.T) {
	data := make([]byte, 2*format.DBBlockSize+1000)
	for i := range data {
		data[i] = byte(i % 251)
	}
	root := &testutil.Key{
		Name: "ROOT",
		Values: []testutil.Value{
			{Name: "Huge", Type: types.REG_BINARY, Data: data, Segmented: true},
			{Name: "Flat", Type: types.REG_BINARY, Data: data},
		},
	}
	h, err := OpenBytes(testutil.Build(root).Bytes)
	require.NoError(t, err)

	huge, ok, err := h.ResolveValue("Huge")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, huge.Segmented)
	require.Equal(t, data, huge.Data)

	flat, ok, err := h.ResolveValue("Flat")
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, flat.Segmented)
	require.Equal(t, data, flat.Data)
}

func TestVK_BigData_ShortSegments(t *testing.T) {
	data := make([]byte, format.DBBlockSize+10)
	root := &testutil.Key{
		Name:   "ROOT",
		Values: []testutil.Value{{Name: "Huge", Type: types.REG_BINARY, Data: data, Segmented: true}},
	}
	img := testutil.Build(root)
	// drop the second segment from the db record
	vk := img.Abs(img.Values["Huge"])
	db := img.Abs(int32(binary.LittleEndian.Uint32(img.Bytes[vk+8:])))
	img.PutBytes(db+2, []byte{1, 0})

	h, err := OpenBytes(img.Bytes)
	require.Nil(t, h)
	require.ErrorIs(t, err, types.ErrMalformedRecord)
}

func TestVK_BigData_OffsetPastEnd(t *testing.T) {
	data := make([]byte, format.DBBlockSize+10)
	root := &testutil.Key{
		Name:   "ROOT",
		Values: []testutil.Value{{Name: "Huge", Type: types.REG_BINARY, Data: data, Segmented: true}},
	}
	img := testutil.Build(root)
	vk := img.Abs(img.Values["Huge"])
	// data cell offset lands one byte before the end of the image
	img.PutI32(vk+format.VKDataOffOffset, int32(len(img.Bytes)-format.HeaderSize-format.CellHeaderSize-1))

	h, err := OpenBytes(img.Bytes)
	require.Nil(t, h)
	require.ErrorIs(t, err, types.ErrOutOfBounds)
}
