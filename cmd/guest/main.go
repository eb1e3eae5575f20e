//go:build wasip1 && wasm

// Command guest is the WebAssembly binary entry point: it declares the
// unchanged ABI (allocate/deallocate/setup/execute exported, return_error
// imported, spec.md §6) using Go's go:wasmexport/go:wasmimport directives
// and delegates everything else to the pure-Go, WASM-independent trino.Host.
//
// Populating Functions with actual user callables is out of scope here, the
// same way loading user source is out of scope for pyhost.c's setup: a
// build that embeds real guest functions registers them against Functions
// from a separate file (an init func in this package) before the module is
// instantiated.
package main

import (
	"unsafe"

	trino "github.com/trinodb/trino-wasm-go"
	"github.com/trinodb/trino-wasm-go/internal/guestlog"
	"github.com/trinodb/trino-wasm-go/trinoerr"
	"github.com/trinodb/trino-wasm-go/value"
)

// Functions is the default Resolver: a name->Callable table populated by
// whoever links real guest functions into this binary.
var Functions = value.NewRegistry()

var host = trino.NewHost(Functions)

// allocations tracks every live buffer handed out by allocate, keyed by its
// linear-memory address, so execute/deallocate can recover a buffer's exact
// length without trusting an unbounded scan of guest memory.
var allocations = map[uint32][]byte{}

//go:wasmexport allocate
func guestAllocate(size int32) uint32 {
	if size <= 0 {
		return 0
	}
	buf := make([]byte, size)
	ptr := addrOf(buf)
	allocations[ptr] = buf
	return ptr
}

//go:wasmexport deallocate
func guestDeallocate(ptr uint32) {
	delete(allocations, ptr)
}

//go:wasmexport setup
func guestSetup(functionNamePtr, argDescriptorPtr, resultDescriptorPtr uint32) {
	name := readCString(functionNamePtr)
	argDesc := allocations[argDescriptorPtr]
	resultDesc := allocations[resultDescriptorPtr]

	if err := host.Setup(name, argDesc, resultDesc); err != nil {
		guestlog.Errorf("setup failed: %s", err)
		trinoerr.Fatalf("setup: %v", err)
	}
}

//go:wasmexport execute
func guestExecute(dataPtr uint32) uint32 {
	payload, ok := allocations[dataPtr]
	if !ok {
		trinoerr.Fatalf("execute: unknown payload pointer %d", dataPtr)
	}

	result, errInfo := host.Execute(payload)
	if errInfo != nil {
		returnError(int32(errInfo.Code), errInfo.Message, errInfo.Traceback)
		return 0
	}

	resultPtr := guestAllocate(int32(len(result)))
	copy(allocations[resultPtr], result)
	return resultPtr
}

//go:wasmimport trino return_error
func trinoReturnError(errorCode int32, messagePtr uint32, messageSize int32, tracebackPtr uint32, tracebackSize int32)

// returnError adapts the import's four borrowed byte-region arguments to
// plain Go strings, taking addresses of their backing arrays directly: on
// wasip1/wasm the Go heap is the only linear memory, so no separate copy
// into an allocate()-tracked buffer is needed for a region the host only
// reads synchronously during this one call.
func returnError(code int32, message, traceback string) {
	msg := []byte(message)
	tb := []byte(traceback)
	trinoReturnError(code, addrOf(msg), int32(len(msg)), addrOf(tb), int32(len(tb)))
}

// addrOf returns b's backing array address as a 32-bit linear-memory
// offset, or 0 for an empty slice.
func addrOf(b []byte) uint32 {
	if len(b) == 0 {
		return 0
	}
	return uint32(uintptr(unsafe.Pointer(&b[0])))
}

// readCString reads the NUL-terminated function name written into an
// allocate()-tracked buffer at ptr, mirroring pyhost.c's
// `(const char*)functionName` cast over a C string.
func readCString(ptr uint32) string {
	buf, ok := allocations[ptr]
	if !ok {
		return ""
	}
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

func main() {}
