package wiretype

import (
	"errors"
	"fmt"

	"github.com/trinodb/trino-wasm-go/endian"
)

// ErrUnknownType is returned when the descriptor contains a 32-bit code
// outside the closed set of Trino wire types. codec.Decode / codec.Encode
// return it unchanged, and trino.Host.Execute treats it as fatal: a
// malformed descriptor means setup was called with corrupt data and the
// guest instance cannot proceed.
var ErrUnknownType = errors.New("wiretype: unknown type code")

// Cursor is a non-destructive, non-allocating walk over a borrowed
// descriptor byte slice. The descriptor is immutable for the lifetime of
// the guest (spec.md §5); Cursor only ever advances or is repositioned to a
// previously saved offset, never mutates the underlying bytes.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps a descriptor byte slice starting at offset 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Save returns the current offset, to be restored later with RestoreTo. Used
// by ARRAY and MAP decode/encode to re-walk the same element-type subtree
// for every element (or key/value pair).
func (c *Cursor) Save() int { return c.pos }

// RestoreTo repositions the cursor to a previously saved offset.
func (c *Cursor) RestoreTo(pos int) { c.pos = pos }

// Pos returns the current offset, matching the data cursor's own notion of
// "end of consumed region" for invariant I1.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the number of unread descriptor bytes.
func (c *Cursor) Len() int { return len(c.data) - c.pos }

// ReadCode reads the next 32-bit type code and nothing else. ROW's
// field-count header and ARRAY/MAP's operand subtrees are not consumed
// here; the caller reads the count (ReadCount) or recurses into the
// operand subtrees itself, per spec.md §4.1.
func (c *Cursor) ReadCode() (Code, error) {
	raw, err := c.readI32()
	if err != nil {
		return 0, fmt.Errorf("wiretype: reading type code: %w", err)
	}
	code := Code(raw)
	if !code.isScalar() && code != Row && code != Array && code != Map {
		return 0, fmt.Errorf("%w: %d", ErrUnknownType, raw)
	}
	return code, nil
}

// ReadCount reads the 32-bit field count that follows a ROW code.
func (c *Cursor) ReadCount() (int32, error) {
	n, err := c.readI32()
	if err != nil {
		return 0, fmt.Errorf("wiretype: reading row field count: %w", err)
	}
	return n, nil
}

func (c *Cursor) readI32() (int32, error) {
	if c.Len() < 4 {
		return 0, fmt.Errorf("wiretype: truncated descriptor at offset %d", c.pos)
	}
	v := int32(endian.LittleEndian.Uint32(c.data[c.pos:]))
	c.pos += 4
	return v, nil
}

// Skip advances past one complete subtree without touching the data
// stream. It is the only way to correctly handle a null value (which
// consumes one data byte but an entire descriptor subtree, spec.md I2) or
// an empty ARRAY/MAP (which must still advance past its element type,
// spec.md P4).
func (c *Cursor) Skip() error {
	code, err := c.ReadCode()
	if err != nil {
		return err
	}
	switch code {
	case Row:
		count, err := c.ReadCount()
		if err != nil {
			return err
		}
		for i := int32(0); i < count; i++ {
			if err := c.Skip(); err != nil {
				return err
			}
		}
	case Array:
		if err := c.Skip(); err != nil {
			return err
		}
	case Map:
		if err := c.Skip(); err != nil {
			return err
		}
		if err := c.Skip(); err != nil {
			return err
		}
	default:
		// scalar: ReadCode already consumed everything this type needs.
	}
	return nil
}
