package payload

import (
	"math"

	"github.com/trinodb/trino-wasm-go/endian"
)

// initialBufferSize is the starting capacity for a result Buffer, matching
// the original host's xrealloc(NULL, 1024) at the start of every execute
// call.
const initialBufferSize = 1024

// Buffer is a growable output buffer for one execute call's encoded result.
// It reserves a 4-byte length prefix at offset 0; the caller fills it in
// once encoding finishes via FillLengthPrefix. Buffer is allocated fresh per
// call and never pooled — spec.md §5 excludes memory pooling across calls.
type Buffer struct {
	data []byte
}

// NewBuffer creates a Buffer with the 4-byte length prefix reserved.
func NewBuffer() *Buffer {
	return &Buffer{data: make([]byte, 4, initialBufferSize)}
}

// Len returns the total number of bytes written, including the length
// prefix.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the buffer's contents, length prefix included. The slice
// aliases the buffer's storage.
func (b *Buffer) Bytes() []byte { return b.data }

// FillLengthPrefix writes the payload size (total bytes written after the
// 4-byte prefix) into the first 4 bytes of the buffer. Call once, after
// encoding completes successfully.
func (b *Buffer) FillLengthPrefix() {
	size := len(b.data) - 4
	endian.LittleEndian.PutUint32(b.data[0:4], uint32(size))
}

func (b *Buffer) grow(extra int) {
	needed := len(b.data) + extra
	if needed <= cap(b.data) {
		return
	}
	newCap := cap(b.data)
	if newCap == 0 {
		newCap = initialBufferSize
	}
	for newCap < needed {
		newCap *= 2
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// WriteBytes appends raw bytes, growing the buffer if necessary.
func (b *Buffer) WriteBytes(p []byte) {
	b.grow(len(p))
	b.data = append(b.data, p...)
}

// WriteBool appends a 1-byte boolean (also used for the presence flag).
func (b *Buffer) WriteBool(v bool) {
	var x byte
	if v {
		x = 1
	}
	b.grow(1)
	b.data = append(b.data, x)
}

// WriteI8 appends a signed 8-bit integer (TINYINT).
func (b *Buffer) WriteI8(v int8) {
	b.grow(1)
	b.data = append(b.data, byte(v))
}

// WriteI16 appends a little-endian signed 16-bit integer (SMALLINT, the
// timezone offset fields).
func (b *Buffer) WriteI16(v int16) {
	b.grow(2)
	b.data = endian.LittleEndian.AppendUint16(b.data, uint16(v))
}

// WriteI32 appends a little-endian signed 32-bit integer (INTEGER, DATE,
// INTERVAL_YEAR_TO_MONTH, container/length counts).
func (b *Buffer) WriteI32(v int32) {
	b.grow(4)
	b.data = endian.LittleEndian.AppendUint32(b.data, uint32(v))
}

// WriteI64 appends a little-endian signed 64-bit integer (BIGINT, TIME,
// TIMESTAMP, INTERVAL_DAY_TO_SECOND).
func (b *Buffer) WriteI64(v int64) {
	b.grow(8)
	b.data = endian.LittleEndian.AppendUint64(b.data, uint64(v))
}

// WriteF32 appends a little-endian IEEE-754 single-precision float (REAL).
func (b *Buffer) WriteF32(v float32) {
	b.WriteI32(int32(math.Float32bits(v))) //nolint:gosec
}

// WriteF64 appends a little-endian IEEE-754 double-precision float
// (DOUBLE).
func (b *Buffer) WriteF64(v float64) {
	b.WriteI64(int64(math.Float64bits(v))) //nolint:gosec
}

// WriteVarBytes appends a 32-bit size prefix followed by p (DECIMAL text,
// VARCHAR, JSON, VARBINARY).
func (b *Buffer) WriteVarBytes(p []byte) {
	b.WriteI32(int32(len(p))) //nolint:gosec
	b.WriteBytes(p)
}
