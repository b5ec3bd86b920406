package hive

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/joshuapare/hiveparse/internal/buf"
	"github.com/joshuapare/hiveparse/internal/format"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// decoder walks the offset graph of one hive image and fills the arenas.
type decoder struct {
	c        *buf.Cursor
	maxDepth int
	visited  *roaring.Bitmap // absolute positions of entered nk records

	nodes  []Node
	values []Value
}

func newDecoder(data []byte, maxDepth int) *decoder {
	return &decoder{
		c:        buf.NewCursor(data),
		maxDepth: maxDepth,
		visited:  roaring.New(),
	}
}

// blockPos converts a stored offset into the absolute position of the
// record it refers to: past the base block and the cell size prefix.
func blockPos(off int32) int {
	return format.HeaderSize + int(off) + format.CellHeaderSize
}

// enterBlock seeks to the record stored at off and returns its position.
func (d *decoder) enterBlock(off int32) (int, error) {
	if off < 0 {
		return 0, &types.Error{
			Kind:   types.ErrKindOutOfBounds,
			Msg:    fmt.Sprintf("negative cell offset %d", off),
			Offset: int(off),
		}
	}
	pos := blockPos(off)
	if err := d.c.Seek(pos); err != nil {
		return 0, err
	}
	return pos, nil
}

// readSignature reads the two-letter tag at the cursor.
func (d *decoder) readSignature() (string, error) {
	sig, err := d.c.ReadBytes(format.SignatureSize)
	if err != nil {
		return "", err
	}
	return string(sig), nil
}

// rootOffset picks where decoding starts. The first cell of the first hbin
// is used whenever it holds an "nk" record, which is where Windows writes the
// root. Otherwise the stored header field is used if it points at an "nk"
// record, and the first cell is used as a last resort so the decode reports
// what sits there.
func rootOffset(h format.Header, data []byte) int32 {
	if isNKAt(data, format.DefaultRootCellOffset) {
		return format.DefaultRootCellOffset
	}
	off := h.RootCellOffset
	if off != 0 && off <= math.MaxInt32 && isNKAt(data, int32(off)) {
		return int32(off)
	}
	return format.DefaultRootCellOffset
}

// isNKAt reports whether the record stored at off starts with "nk".
func isNKAt(data []byte, off int32) bool {
	sig, ok := buf.Slice(data, blockPos(off), format.SignatureSize)
	return ok && string(sig) == string(format.NKSignature)
}

func (d *decoder) decodeTree(root int32) error {
	_, err := d.decodeNode(root, NoParent, 0)
	return err
}

func (d *decoder) depthError(depth, pos int) error {
	return &types.Error{
		Kind:   types.ErrKindDepthExceeded,
		Msg:    fmt.Sprintf("key depth %d exceeds limit %d", depth, d.maxDepth),
		Offset: pos,
	}
}

func (d *decoder) cycleError(pos int) error {
	return &types.Error{
		Kind:   types.ErrKindCycleDetected,
		Msg:    fmt.Sprintf("nk record at 0x%x reached twice", pos),
		Offset: pos,
	}
}
