package value

import (
	"fmt"

	"github.com/trinodb/trino-wasm-go/internal/hash"
)

// Callable is a user-authored guest function: the thing setup locates by
// name and execute invokes once per row. How a Callable comes to exist —
// loading user source, compiling it, wiring it into a runtime — is out of
// scope for this module (spec.md §1); the core only needs to call one.
type Callable interface {
	// Call invokes the function with one Tuple argument per ROW field of
	// the function's signature. It returns the result value (which may
	// itself be Null, a scalar, or a ROW/ARRAY/MAP) or an error if the
	// user function raised.
	Call(args Tuple) (any, error)
}

// CallableFunc adapts a plain Go function to Callable.
type CallableFunc func(args Tuple) (any, error)

// Call implements Callable.
func (f CallableFunc) Call(args Tuple) (any, error) { return f(args) }

// Resolver finds a guest function by name. spec.md §6 describes this as
// looking up "the attribute whose name is the zero-terminated UTF-8 string
// at functionNamePtr" inside the guest's loaded user module; in this
// rewrite that lookup is expressed as an interface so the core (package
// trino) never needs to know how user functions were loaded.
type Resolver interface {
	Resolve(name string) (Callable, error)
}

// ErrFunctionNotFound is returned by a Registry when no function was
// registered under the requested name.
type ErrFunctionNotFound struct{ Name string }

func (e *ErrFunctionNotFound) Error() string {
	return fmt.Sprintf("value: no guest function named %q", e.Name)
}

// Registry is the default in-process Resolver: a small, fixed table of
// name→Callable populated ahead of time (by the collaborator responsible
// for loading user code, per spec.md §1) and looked up once per setup call.
//
// The lookup key is the function name itself; internal/hash.ID (xxHash64)
// is computed alongside it and exposed through Hash so trino.Host.Setup can
// include it in its setup-complete log line, the same role it plays for metric IDs in
// the teacher, repurposed here for a much smaller, string-keyed table.
type Registry struct {
	fns    map[string]Callable
	hashes map[string]uint64
}

// NewRegistry creates an empty function registry.
func NewRegistry() *Registry {
	return &Registry{
		fns:    make(map[string]Callable),
		hashes: make(map[string]uint64),
	}
}

// Register adds fn under name, overwriting any previous registration.
func (r *Registry) Register(name string, fn Callable) {
	r.fns[name] = fn
	r.hashes[name] = hash.ID(name)
}

// Resolve implements Resolver.
func (r *Registry) Resolve(name string) (Callable, error) {
	fn, ok := r.fns[name]
	if !ok {
		return nil, &ErrFunctionNotFound{Name: name}
	}
	return fn, nil
}

// Hash returns the xxHash64 of name if it has been registered. trino.Host
// probes for this method on its Resolver and, when present, logs the hash
// alongside the function name in Setup's info-level setup-complete line.
func (r *Registry) Hash(name string) (uint64, bool) {
	h, ok := r.hashes[name]
	return h, ok
}
