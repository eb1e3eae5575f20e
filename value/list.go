package value

// List is the native representation of a Trino ARRAY: an ordered sequence
// of decoded elements. It is a thin wrapper rather than a bare []any so
// that codec.Encode can require "an ordered sequence" (spec.md §4.3) without
// accepting an arbitrary slice-typed Go value the guest function never
// meant as an ARRAY.
type List struct {
	items []any
}

// NewList creates a List with the given initial capacity.
func NewList(capacity int) *List {
	return &List{items: make([]any, 0, capacity)}
}

// Append adds v to the end of the list.
func (l *List) Append(v any) {
	l.items = append(l.items, v)
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// At returns the element at index i.
func (l *List) At(i int) any { return l.items[i] }

// Items returns the underlying slice. The caller must not retain it past
// the list's own lifetime if the list is later mutated.
func (l *List) Items() []any { return l.items }
