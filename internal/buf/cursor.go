package buf

import "github.com/joshuapare/hiveparse/pkg/types"

// Cursor is a bounds-checked random-access reader over a byte slice. Every
// read advances the position past the bytes consumed; any access that would
// leave [0, Len()] fails with a types.ErrOutOfBounds error and leaves the
// position unchanged.
type Cursor struct {
	b   []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{b: b}
}

// Len returns the size of the underlying content.
func (c *Cursor) Len() int { return len(c.b) }

// Pos returns the current absolute position.
func (c *Cursor) Pos() int { return c.pos }

// Seek moves to the absolute position pos. Seeking to Len() is allowed.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.b) {
		return types.OutOfBounds(pos, 0, len(c.b))
	}
	c.pos = pos
	return nil
}

// Skip advances the position by n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.next(n)
	return err
}

// ReadBytes returns a copy of the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	v, err := c.next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, v)
	return out, nil
}

// ReadUint16 reads a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	v, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return U16LE(v), nil
}

// ReadInt16 reads a little-endian int16.
func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a little-endian int32.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return I32LE(v), nil
}

// ReadInt64 reads a little-endian int64.
func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.next(8)
	if err != nil {
		return 0, err
	}
	return int64(U64LE(v)), nil
}

// next returns a view of the next n bytes and advances past them.
func (c *Cursor) next(n int) ([]byte, error) {
	v, ok := Slice(c.b, c.pos, n)
	if !ok {
		return nil, types.OutOfBounds(c.pos, n, len(c.b))
	}
	c.pos += n
	return v, nil
}
