// Package payload implements the two halves of the value wire format: Reader
// walks the borrowed argument payload the engine hands to execute, and Buffer
// accumulates the encoded result the engine reads back.
//
// Both sides speak the same fixed little-endian format described by
// spec.md §3: every value begins with a 1-byte presence flag, followed by a
// type-specific encoding that is either fixed-width or a 32-bit length
// prefix plus that many bytes.
package payload

import (
	"fmt"
	"math"

	"github.com/trinodb/trino-wasm-go/endian"
)

// Reader is a cursor over a borrowed data-stream byte slice. It never
// allocates and never copies the underlying bytes; fixed and variable-width
// reads just advance an offset.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for reading. data is borrowed for the Reader's
// lifetime and must not be retained past the call that provided it.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current read offset.
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int { return len(r.data) - r.pos }

func (r *Reader) need(n int) error {
	if r.Len() < n {
		return fmt.Errorf("payload: need %d bytes at offset %d, have %d", n, r.pos, r.Len())
	}
	return nil
}

// Bool reads the 1-byte presence flag (or BOOLEAN value): 0 is false, any
// other byte is true.
func (r *Reader) Bool() (bool, error) {
	if err := r.need(1); err != nil {
		return false, err
	}
	v := r.data[r.pos] != 0
	r.pos++
	return v, nil
}

// I8 reads a signed 8-bit integer (TINYINT).
func (r *Reader) I8() (int8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := int8(r.data[r.pos])
	r.pos++
	return v, nil
}

// I16 reads a little-endian signed 16-bit integer (SMALLINT).
func (r *Reader) I16() (int16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := int16(endian.LittleEndian.Uint16(r.data[r.pos:]))
	r.pos += 2
	return v, nil
}

// I32 reads a little-endian signed 32-bit integer (INTEGER, DATE,
// INTERVAL_YEAR_TO_MONTH, and every container/length prefix).
func (r *Reader) I32() (int32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := int32(endian.LittleEndian.Uint32(r.data[r.pos:]))
	r.pos += 4
	return v, nil
}

// I64 reads a little-endian signed 64-bit integer (BIGINT, TIME, TIMESTAMP,
// INTERVAL_DAY_TO_SECOND).
func (r *Reader) I64() (int64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := int64(endian.LittleEndian.Uint64(r.data[r.pos:]))
	r.pos += 8
	return v, nil
}

// F32 reads a little-endian IEEE-754 single-precision float (REAL).
func (r *Reader) F32() (float32, error) {
	bits, err := r.I32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(bits)), nil
}

// F64 reads a little-endian IEEE-754 double-precision float (DOUBLE).
func (r *Reader) F64() (float64, error) {
	bits, err := r.I64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(bits)), nil
}

// Bytes reads n raw bytes. The returned slice aliases the reader's
// underlying data and must not be modified by the caller.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("payload: negative length %d", n)
	}
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

// VarBytes reads a 32-bit size-prefixed byte run (DECIMAL text, VARCHAR,
// JSON, VARBINARY).
func (r *Reader) VarBytes() ([]byte, error) {
	size, err := r.I32()
	if err != nil {
		return nil, err
	}
	return r.Bytes(int(size))
}
