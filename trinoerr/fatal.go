package trinoerr

import "fmt"

// Fatal wraps a condition that must abort the guest instance rather than be
// reported through return_error: a malformed type descriptor, a failed
// allocation, or an internal invariant violation (spec.md §7). Fatal is
// always used with panic. trino.Host.Execute's recover re-panics on seeing
// one instead of translating it, so the WASM trap actually propagates past
// cmd/guest's exported functions and the engine restarts the instance,
// matching "the engine treats this as a sandbox kill." A Fatal raised
// outside Execute (e.g. cmd/guest's own ABI-misuse checks) has no recover
// above it at all and traps the same way by simply going unhandled.
type Fatal struct {
	Reason string
}

func (f *Fatal) Error() string { return f.Reason }

// Fatalf panics with a Fatal error built from the given format string.
func Fatalf(format string, args ...any) {
	panic(&Fatal{Reason: fmt.Sprintf(format, args...)})
}

// IsFatal reports whether r (a recovered panic value) is a *Fatal.
func IsFatal(r any) (*Fatal, bool) {
	f, ok := r.(*Fatal)
	return f, ok
}
