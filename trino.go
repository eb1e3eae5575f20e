// Package trino is the Runtime Glue: it wires the Type Descriptor Walker,
// Value Decoder/Encoder, and Error Translator together behind the two calls
// the guest's ABI actually needs, Setup and Execute, mirroring pyhost.c's
// setup/execute pair but with the module-global state collected into a
// single Host value so it is constructible and testable without a WASM
// runtime.
//
// # Basic usage
//
//	registry := value.NewRegistry()
//	registry.Register("celsius_to_fahrenheit", value.CallableFunc(func(args value.Tuple) (any, error) {
//	    c := args[0].(float64)
//	    return c*9/5 + 32, nil
//	}))
//
//	host := trino.NewHost(registry)
//	if err := host.Setup("celsius_to_fahrenheit", argDescriptor, resultDescriptor); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, errInfo := host.Execute(rowPayload)
//	if errInfo != nil {
//	    // hand errInfo.Code/Message/Traceback to return_error
//	}
package trino

import (
	"errors"
	"fmt"

	"github.com/trinodb/trino-wasm-go/codec"
	"github.com/trinodb/trino-wasm-go/internal/guestlog"
	"github.com/trinodb/trino-wasm-go/payload"
	"github.com/trinodb/trino-wasm-go/trinoerr"
	"github.com/trinodb/trino-wasm-go/value"
	"github.com/trinodb/trino-wasm-go/wiretype"
)

// Host holds everything setup fixes once and execute reuses for every row:
// the located user function and the two borrowed type descriptors. It is
// the Go realization of pyhost.c's module-global guestFunction/
// trinoArgType/trinoReturnType (spec.md §9 "Global state").
type Host struct {
	resolver   value.Resolver
	fn         value.Callable
	fnName     string
	argDesc    []byte
	resultDesc []byte
	tracebacks *guestlog.TracebackRing
}

// NewHost creates a Host that looks up the guest function through resolver.
// The function itself is not resolved until Setup is called.
func NewHost(resolver value.Resolver) *Host {
	return &Host{resolver: resolver, tracebacks: guestlog.NewTracebackRing()}
}

// Setup locates functionName through the Host's Resolver and stores the two
// descriptor byte slices. It must be called exactly once, before any call
// to Execute (spec.md §6). argDescriptor and resultDescriptor are borrowed:
// the Host never copies or mutates them.
func (h *Host) Setup(functionName string, argDescriptor, resultDescriptor []byte) error {
	guestlog.Debugf("setup: function=%s argDescLen=%d resultDescLen=%d", functionName, len(argDescriptor), len(resultDescriptor))

	fn, err := h.resolver.Resolve(functionName)
	if err != nil {
		return fmt.Errorf("trino: setup: %w", err)
	}

	h.fn = fn
	h.fnName = functionName
	h.argDesc = argDescriptor
	h.resultDesc = resultDescriptor

	if hasher, ok := h.resolver.(interface {
		Hash(name string) (uint64, bool)
	}); ok {
		if hash, ok := hasher.Hash(functionName); ok {
			guestlog.Infof("setup complete: function=%s hash=%x", functionName, hash)
			return nil
		}
	}
	guestlog.Infof("setup complete: function=%s", functionName)
	return nil
}

// Execute decodes one row's argument payload, calls the function located by
// Setup, and encodes its return value. On success it returns the
// length-prefixed result buffer and a nil *trinoerr.Translated, matching
// execute's "returns a pointer to a region" contract (spec.md §6). On
// failure it returns a nil buffer and a non-nil Translated describing what
// return_error should report; the caller (cmd/guest) never needs to know
// whether the failure came from decoding, the user function, or encoding.
//
// A panic anywhere below Execute — from Decode, Encode, or the user
// function — is recovered here rather than unwinding past the
// go:wasmexport boundary, which would abort the instance uncontrolled
// instead of going through return_error (spec.md §5). A panic carrying
// *trinoerr.Fatal is re-panicked deliberately: that condition really must
// trap the WASM instance (spec.md §7).
func (h *Host) Execute(argPayload []byte) (result []byte, errInfo *trinoerr.Translated) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if fatal, ok := trinoerr.IsFatal(r); ok {
			panic(fatal)
		}
		t := trinoerr.Recover(r)
		h.tracebacks.Record(t.Traceback)
		guestlog.Errorf("execute: function=%s panicked: %s", h.fnName, t.Message)
		result, errInfo = nil, &t
	}()

	guestlog.Debugf("execute: function=%s payloadLen=%d", h.fnName, len(argPayload))

	decoded, err := codec.Decode(wiretype.NewCursor(h.argDesc), payload.NewReader(argPayload))
	if err != nil {
		abortIfMalformed(err)
		return h.fail(err)
	}

	args, ok := decoded.(value.Tuple)
	if !ok {
		return h.fail(&trinoerr.ImplementationError{Want: "ROW", Got: fmt.Sprintf("%T", decoded)})
	}

	out, err := h.fn.Call(args)
	if err != nil {
		return h.fail(err)
	}

	buf := payload.NewBuffer()
	if err := codec.Encode(wiretype.NewCursor(h.resultDesc), out, buf); err != nil {
		abortIfMalformed(err)
		return h.fail(err)
	}
	buf.FillLengthPrefix()

	guestlog.Debugf("execute: function=%s resultLen=%d", h.fnName, buf.Len())
	return buf.Bytes(), nil
}

// abortIfMalformed panics with a *trinoerr.Fatal when err traces back to an
// unknown descriptor type code: a malformed type descriptor is not a
// recoverable per-row failure (spec.md §7), it means setup itself was
// called with corrupt data and the instance cannot safely continue.
func abortIfMalformed(err error) {
	if errors.Is(err, wiretype.ErrUnknownType) {
		trinoerr.Fatalf("malformed type descriptor: %v", err)
	}
}

func (h *Host) fail(err error) ([]byte, *trinoerr.Translated) {
	t := trinoerr.Translate(err)
	guestlog.Errorf("execute: function=%s failed: %s", h.fnName, t.Message)
	return nil, &t
}

// Tracebacks returns the debug ring buffer of recent recovered-panic
// tracebacks, for internal/guestlog-style debug dumps. It is not part of
// the wire protocol.
func (h *Host) Tracebacks() []string {
	return h.tracebacks.Dump()
}
