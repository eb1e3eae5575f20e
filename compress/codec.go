// Package compress provides the traceback-compression codec used by
// internal/guestlog: an ambient diagnostics aid, not part of the wire
// format. The wire-level return_error traceback is always sent
// uncompressed, per spec.md §4.4/§6 (unchanged ABI); this package only
// compresses what a debug ring buffer retains internally.
package compress

// Compressor compresses a byte slice.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result. The
	// input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice produced by a Compressor.
type Decompressor interface {
	// Decompress restores the original bytes. Returns an error if data is
	// corrupt or was not produced by the matching Compressor.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor.
type Codec interface {
	Compressor
	Decompressor
}
