// Package bytestream provides the offset-tracking reader shared by the header
// codec and the package scanner.
//
// A Cursor reads fixed-size little-endian fields from an io.ReaderAt. Because it
// addresses the source by offset it can skip package bodies without reading
// them, and revisit verified value runs when the sample table is filled.
//
// Note: A Cursor is NOT thread-safe. Each decode owns its own cursor.
package bytestream

import (
	"errors"
	"fmt"
	"io"

	"github.com/palmtree-bci/palmrec/endian"
	"github.com/palmtree-bci/palmrec/internal/encoding"
	"github.com/palmtree-bci/palmrec/internal/pool"
)

// ErrShortRead is returned when a read or skip would pass the end of the source.
var ErrShortRead = errors.New("read past end of source")

// Cursor reads fields sequentially from a sized io.ReaderAt.
type Cursor struct {
	r       io.ReaderAt
	size    int64
	off     int64
	engine  endian.EndianEngine
	scratch [8]byte
}

// NewCursor creates a cursor positioned at offset 0 of a source of the given size.
func NewCursor(r io.ReaderAt, size int64) *Cursor {
	return &Cursor{
		r:      r,
		size:   size,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Offset returns the current read position.
func (c *Cursor) Offset() int64 {
	return c.off
}

// Size returns the total size of the source.
func (c *Cursor) Size() int64 {
	return c.size
}

// Remaining returns the number of bytes between the current position and the end.
func (c *Cursor) Remaining() int64 {
	return c.size - c.off
}

// Fits reports whether n more bytes are available from the current position.
func (c *Cursor) Fits(n int64) bool {
	return n >= 0 && c.off+n <= c.size
}

// Engine returns the byte order used by the cursor.
func (c *Cursor) Engine() endian.EndianEngine {
	return c.engine
}

// Seek moves the cursor to an absolute offset within the source.
func (c *Cursor) Seek(off int64) error {
	if off < 0 || off > c.size {
		return fmt.Errorf("%w: seek to %d in %d bytes", ErrShortRead, off, c.size)
	}
	c.off = off

	return nil
}

// Skip advances the cursor by n bytes without reading them.
func (c *Cursor) Skip(n int64) error {
	if !c.Fits(n) {
		return fmt.Errorf("%w: skip %d bytes at offset %d of %d", ErrShortRead, n, c.off, c.size)
	}
	c.off += n

	return nil
}

// ReadFull fills dst from the current position and advances past it.
func (c *Cursor) ReadFull(dst []byte) error {
	if err := c.readAt(dst, c.off); err != nil {
		return err
	}
	c.off += int64(len(dst))

	return nil
}

// Bytes reads the next n bytes into a newly allocated slice.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || !c.Fits(int64(n)) {
		return nil, fmt.Errorf("%w: read %d bytes at offset %d of %d", ErrShortRead, n, c.off, c.size)
	}

	buf := make([]byte, n)
	if err := c.ReadFull(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// Uint8 reads one byte.
func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.next(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Uint16 reads a little-endian uint16.
func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}

	return c.engine.Uint16(b), nil
}

// Uint32 reads a little-endian uint32.
func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}

	return c.engine.Uint32(b), nil
}

// Int32 reads a little-endian int32.
func (c *Cursor) Int32() (int32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}

	return endian.Int32(c.engine, b), nil
}

// Int64 reads a little-endian int64.
func (c *Cursor) Int64() (int64, error) {
	b, err := c.next(8)
	if err != nil {
		return 0, err
	}

	return endian.Int64(c.engine, b), nil
}

// Float64 reads a little-endian IEEE 754 double.
func (c *Cursor) Float64() (float64, error) {
	b, err := c.next(8)
	if err != nil {
		return 0, err
	}

	return endian.Float64(c.engine, b), nil
}

// Float64sAt decodes len(dst) doubles starting at the absolute offset off.
// The cursor position is not changed.
func (c *Cursor) Float64sAt(off int64, dst []float64) error {
	n := len(dst) * encoding.Float64Size
	if n == 0 {
		return nil
	}

	bb := pool.GetValueBuffer()
	defer pool.PutValueBuffer(bb)

	raw := bb.Resize(n)
	if err := c.readAt(raw, off); err != nil {
		return err
	}

	return encoding.DecodeFloat64s(dst, raw, c.engine)
}

// Float64s decodes len(dst) doubles from the current position and advances past them.
func (c *Cursor) Float64s(dst []float64) error {
	if err := c.Float64sAt(c.off, dst); err != nil {
		return err
	}
	c.off += int64(len(dst) * encoding.Float64Size)

	return nil
}

// next reads n (at most 8) bytes into the scratch buffer and advances.
func (c *Cursor) next(n int) ([]byte, error) {
	b := c.scratch[:n]
	if err := c.ReadFull(b); err != nil {
		return nil, err
	}

	return b, nil
}

// readAt fills dst from off, treating any shortfall as ErrShortRead.
func (c *Cursor) readAt(dst []byte, off int64) error {
	if off < 0 || off+int64(len(dst)) > c.size {
		return fmt.Errorf("%w: read %d bytes at offset %d of %d", ErrShortRead, len(dst), off, c.size)
	}

	n, err := c.r.ReadAt(dst, off)
	if n == len(dst) {
		// io.ReaderAt may report io.EOF together with a complete read at the end of the source.
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	return fmt.Errorf("%w: read %d of %d bytes at offset %d: %w", ErrShortRead, n, len(dst), off, err)
}
