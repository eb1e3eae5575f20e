package guestlog

import (
	"sync"

	"github.com/trinodb/trino-wasm-go/compress"
)

// tracebackCompressThreshold is the size above which a retained traceback is
// zstd-compressed before entering the ring. Most tracebacks are a few
// hundred bytes (a handful of Go frames); compression only pays for itself
// past a few KB, so small entries are kept raw to avoid the codec's fixed
// per-call overhead.
const tracebackCompressThreshold = 2048

// tracebackRingCapacity bounds how many recovered-panic tracebacks
// TracebackRing retains for debug dumps; this is purely an ambient
// diagnostics aid with no wire-format role (spec.md §6's return_error
// traceback is always sent uncompressed and unbounded).
const tracebackRingCapacity = 8

type tracebackEntry struct {
	compressed bool
	data       []byte
}

// TracebackRing retains the most recent recovered-panic tracebacks,
// compressing the larger ones with compress.Codec. It exists so
// internal/guestlog debug dumps can show recent failure history without
// holding every traceback at full size for the life of the instance.
type TracebackRing struct {
	mu      sync.Mutex
	codec   compress.Codec
	entries []tracebackEntry
	next    int
}

// NewTracebackRing creates a ring using the zstd codec.
func NewTracebackRing() *TracebackRing {
	return &TracebackRing{codec: compress.NewZstdCodec()}
}

// Record adds tb to the ring, compressing it first if it exceeds the
// threshold. Compression failure is not fatal: the entry is kept raw
// instead, since losing a diagnostics-only traceback to a compressor bug
// would be worse than storing it uncompressed.
func (r *TracebackRing) Record(tb string) {
	if tb == "" {
		return
	}

	entry := tracebackEntry{data: []byte(tb)}
	if len(tb) > tracebackCompressThreshold {
		if compressed, err := r.codec.Compress(entry.data); err == nil {
			entry = tracebackEntry{compressed: true, data: compressed}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) < tracebackRingCapacity {
		r.entries = append(r.entries, entry)
	} else {
		r.entries[r.next] = entry
		r.next = (r.next + 1) % tracebackRingCapacity
	}
}

// Dump returns every retained traceback, oldest first, decompressing as
// needed. A decompression failure is reported inline rather than dropping
// the entry silently.
func (r *TracebackRing) Dump() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		// r.next is the oldest slot once the ring has wrapped, and 0 before.
		e := r.entries[(r.next+i)%n]
		if !e.compressed {
			out = append(out, string(e.data))
			continue
		}
		raw, err := r.codec.Decompress(e.data)
		if err != nil {
			out = append(out, "<corrupt traceback entry>")
			continue
		}
		out = append(out, string(raw))
	}
	return out
}
