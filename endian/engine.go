// Package endian provides the byte-order engine used to read and write the
// Trino UDF wire format.
//
// The wire format fixes little-endian for every multi-byte field regardless
// of the host's native byte order (the guest may run on any WASM host), so
// this package exposes exactly one engine rather than the general
// little/big-endian choice a storage format might need.
//
//	import "github.com/trinodb/trino-wasm-go/endian"
//
//	engine := endian.LittleEndian
//	buf = engine.AppendUint64(buf, value)
package endian

import "encoding/binary"

// Engine combines ByteOrder and AppendByteOrder from the standard library's
// encoding/binary package into a single interface, giving both in-place
// reads/writes and allocation-free appends through one value.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// LittleEndian is the wire engine for the Trino UDF ABI: every multi-byte
// integer and float on the wire is little-endian, independent of host
// endianness.
var LittleEndian Engine = binary.LittleEndian
