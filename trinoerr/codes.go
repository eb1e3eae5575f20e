// Package trinoerr implements the Error Translator: it maps whatever went
// wrong inside Decode/Encode/the user function into one of the three error
// codes the engine understands, plus a message and (when available) a
// traceback, exactly as pyhost.c's handleTrinoError/resultError/
// overflowError/memoryError do for the embedded CPython host.
package trinoerr

// Code is one of the three error codes the engine's return_error import
// accepts (spec.md §4.4).
type Code int32

const (
	// NumericValueOutOfRange reports an integer-narrowing or interval
	// overflow during encode.
	NumericValueOutOfRange Code = 19
	// ExceededFunctionMemoryLimit reports that the guest ran out of
	// memory while decoding, calling the user function, or encoding.
	ExceededFunctionMemoryLimit Code = 37
	// FunctionImplementationError is the catch-all: type mismatches, bad
	// decimal text, missing tzinfo, user exceptions, and any other
	// recoverable failure not covered by the two codes above.
	FunctionImplementationError Code = 65549
)

// Translated is the (code, message, traceback) triple handed to
// return_error, the direct analogue of the tuple pyhost.c's
// _trino_error_result helper returns.
type Translated struct {
	Code      Code
	Message   string
	Traceback string
}
