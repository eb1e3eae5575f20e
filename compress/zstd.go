package compress

// ZstdCodec compresses tracebacks the guestlog debug ring buffer retains
// internally. It is never used on the wire: return_error always carries an
// uncompressed traceback, per spec.md §4.4.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
