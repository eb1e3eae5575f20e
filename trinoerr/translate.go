package trinoerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Translate converts err into the (code, message, traceback) triple
// execute hands to return_error. It walks err's chain looking for one of
// the three typed errors this package defines; anything else — including a
// user function's own error — defaults to FunctionImplementationError, the
// same default pyhost.c's handleTrinoError falls back to for an
// unrecognized Python exception.
func Translate(err error) Translated {
	var rangeErr *RangeError
	if errors.As(err, &rangeErr) {
		return Translated{Code: NumericValueOutOfRange, Message: rangeErr.Error()}
	}

	var memErr *MemoryError
	if errors.As(err, &memErr) {
		return Translated{Code: ExceededFunctionMemoryLimit, Message: memErr.Error()}
	}

	return Translated{Code: FunctionImplementationError, Message: err.Error()}
}

// Recover converts a recovered panic value into a Translated error with a
// captured stack trace, the Go analogue of an uncaught Python exception
// reaching execute's call boundary with its own traceback attached
// (spec.md §4.4, §7).
//
// Recover must only be called from within a deferred recover(); it panics
// again (rather than returning a zero Translated) if r is nil, since that
// indicates caller error rather than an actual panic to translate.
func Recover(r any) Translated {
	if r == nil {
		panic("trinoerr: Recover called with a nil recovered value")
	}

	msg := fmt.Sprintf("guest function panicked: %v", r)
	if err, ok := r.(error); ok {
		var memErr *MemoryError
		if errors.As(err, &memErr) {
			return Translated{Code: ExceededFunctionMemoryLimit, Message: memErr.Error()}
		}
		msg = fmt.Sprintf("guest function panicked: %v", err)
	}

	return Translated{
		Code:      FunctionImplementationError,
		Message:   msg,
		Traceback: string(debug.Stack()),
	}
}
