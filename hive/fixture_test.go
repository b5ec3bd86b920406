package hive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hiveparse/internal/testutil"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// bigData is 100 bytes, stored in its own data cell.
var bigData = bytes.Repeat([]byte{0x10, 0x20, 0x30, 0x40, 0x50}, 20)

// sampleKey exercises every child index encoding and both value storage forms.
func sampleKey() *testutil.Key {
	ts := testutil.FixtureTime
	many := &testutil.Key{Name: "Many", Timestamp: ts, Index: testutil.IndexRI, RIChunk: 2}
	for _, n := range []string{"k0", "k1", "k2", "k3", "k4"} {
		many.Subkeys = append(many.Subkeys, &testutil.Key{Name: n, Timestamp: ts})
	}
	return &testutil.Key{
		Name:      "ROOT",
		Timestamp: ts,
		Values: []testutil.Value{
			{Name: "RootValue", Type: types.REG_DWORD, Data: []byte{7, 0, 0, 0}},
		},
		Subkeys: []*testutil.Key{
			{
				Name:      "Software",
				Timestamp: ts,
				Index:     testutil.IndexLH,
				Subkeys: []*testutil.Key{
					{
						Name:      "Vendor",
						Timestamp: ts,
						Values: []testutil.Value{
							{Name: "Small", Type: types.REG_BINARY, Data: []byte{1, 2, 3, 0xEE}, Declared: testutil.Len(3)},
							{Name: "Big", Type: types.REG_BINARY, Data: bigData},
							{Name: "", Type: types.REG_SZ, Data: []byte("h\x00e\x00l\x00l\x00o\x00")},
							{Name: "Flagged", Type: types.REG_DWORD, Data: []byte{1, 0, 0, 0}, InlineBit: true},
						},
					},
					{Name: "Other", Timestamp: ts},
				},
			},
			many,
			{
				Name:      "Legacy",
				Timestamp: ts,
				Class:     []byte("CLS"),
				Subkeys: []*testutil.Key{
					{Name: "A", Timestamp: ts},
					{Name: "B", Timestamp: ts},
				},
			},
			{
				Name:      "Wïde",
				Timestamp: ts,
				UTF16Name: true,
				Values: []testutil.Value{
					{Name: "Nämé", UTF16Name: true, Type: types.REG_NONE},
				},
			},
		},
	}
}

func openSample(t *testing.T) (*Hive, *testutil.Image) {
	t.Helper()
	img := testutil.Build(sampleKey())
	h, err := OpenBytes(img.Bytes)
	require.NoError(t, err)
	return h, img
}

func mustResolve(t *testing.T, h *Hive, path string) *Node {
	t.Helper()
	id, err := h.ResolveNode(path)
	require.NoError(t, err)
	return h.Node(id)
}

func childNames(h *Hive, n *Node) []string {
	var names []string
	for _, c := range n.Children {
		names = append(names, h.Node(c).Name)
	}
	return names
}
