// Package value implements the native object model this guest uses in place
// of an embedded scripting runtime: the closed set of Go types a decoded
// Trino value becomes, and the types an encoded Trino value must be.
//
// spec.md §9 describes this as a capability set — construct/extract
// booleans, arbitrary-width integers, floats, strings, byte strings,
// sequences, mappings, tuples, call a user function, detect and raise typed
// errors — that "any embedded runtime offering this set" can satisfy. This
// rewrite realizes that capability set directly as Go's own dynamic value
// (any), narrowed to the concrete types below, rather than bridging to a
// second language.
package value

import "time"

// Null is the runtime representation of an absent (nullable, not-present)
// value, standing in for the embedded runtime's null singleton. A nil any
// is deliberately not used for this so that "this ROW field is null" and
// "this ROW field wasn't populated" are never confusable in Go's type
// system.
type Null struct{}

// IsNull reports whether v is the null singleton.
func IsNull(v any) bool {
	_, ok := v.(Null)
	return ok
}

// Tuple is the native representation of a Trino ROW: a fixed-length,
// ordered sequence whose length is declared by the descriptor. Unlike List,
// a Tuple's length is part of its meaning — codec.Encode rejects a Tuple
// whose length doesn't match the declared field count (spec.md §4.3).
type Tuple []any

// TimeTZ is the native representation of TIME WITH TIME ZONE: a
// microsecond-precision time-of-day plus its UTC offset in minutes. Unlike
// TIMESTAMP WITH TIME ZONE there is no calendar date to carry the offset
// via a time.Time location, so this needs its own small struct.
type TimeTZ struct {
	// Duration is the time of day, as microseconds since midnight.
	Duration time.Duration
	// OffsetMinutes is signed minutes east of UTC.
	OffsetMinutes int16
}
