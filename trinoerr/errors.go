package trinoerr

import "fmt"

// RangeError reports that a value could not be narrowed into its
// destination wire type without loss (spec.md I5, P5). Translate maps it to
// NumericValueOutOfRange, mirroring pyhost.c's overflowError.
type RangeError struct {
	// TypeName is the destination Trino type, e.g. "TINYINT".
	TypeName string
	Value    string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("Value out of range for %s", e.TypeName)
}

// MemoryError reports that the guest could not satisfy an allocation while
// handling a row. Translate maps it to ExceededFunctionMemoryLimit,
// mirroring pyhost.c's memoryError (used both for genuine allocation
// failure and for the "OOM while formatting the error itself" fallback).
type MemoryError struct{}

func (e *MemoryError) Error() string {
	return "guest ran out of memory while processing this row"
}

// ImplementationError reports a conversion failure: an encode value of the
// wrong Go type, a ROW whose length doesn't match the declared field count,
// a DECIMAL or UUID payload that failed to parse, or a decoded argument
// payload that is not a ROW. Translate maps it to
// FunctionImplementationError. A user function's own error is not wrapped
// in an ImplementationError; Translate maps it to the same code directly.
//
// Want mirrors pyhost.c's resultError, which formats "Failed to convert
// Python result type 'X' to Trino type Y: <original exception>" — Want/Got
// play the role of Trino type / Python type there, and Cause carries the
// original failure's message.
type ImplementationError struct {
	Want  string // the Trino type the encoder expected, e.g. "ROW"
	Got   string // the Go type or shape actually seen, e.g. "string"
	Cause error
}

func (e *ImplementationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to convert value of type %q to Trino type %s: %v", e.Got, e.Want, e.Cause)
	}
	return fmt.Sprintf("failed to convert value of type %q to Trino type %s", e.Got, e.Want)
}

func (e *ImplementationError) Unwrap() error { return e.Cause }
