package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictPreservesInsertionOrder(t *testing.T) {
	d := NewDict(4)
	d.Set("b", int64(2))
	d.Set("a", int64(1))
	d.Set("c", int64(3))

	var keys []any
	d.Range(func(k, v any) bool {
		keys = append(keys, k)
		return true
	})
	assert.Equal(t, []any{"b", "a", "c"}, keys)
}

func TestDictUpdateKeepsOriginalPosition(t *testing.T) {
	d := NewDict(2)
	d.Set("a", int64(1))
	d.Set("b", int64(2))
	d.Set("a", int64(99))

	var keys []any
	d.Range(func(k, v any) bool {
		keys = append(keys, k)
		return true
	})
	assert.Equal(t, []any{"a", "b"}, keys)

	v, ok := d.Get("a")
	assert.True(t, ok)
	assert.Equal(t, int64(99), v)
}

func TestListAppendAndAt(t *testing.T) {
	l := NewList(0)
	l.Append("x")
	l.Append("y")
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "x", l.At(0))
	assert.Equal(t, "y", l.At(1))
}
