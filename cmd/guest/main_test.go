//go:build wasip1 && wasm

package main

import "testing"

func TestReadCStringStopsAtNul(t *testing.T) {
	buf := []byte("double_it\x00trailing garbage")
	allocations[1] = buf

	got := readCString(1)
	if got != "double_it" {
		t.Fatalf("readCString: got %q, want %q", got, "double_it")
	}
}

func TestReadCStringUnknownPointer(t *testing.T) {
	if got := readCString(999); got != "" {
		t.Fatalf("readCString(unknown): got %q, want empty", got)
	}
}

func TestAddrOfEmptySliceIsZero(t *testing.T) {
	if got := addrOf(nil); got != 0 {
		t.Fatalf("addrOf(nil): got %d, want 0", got)
	}
}

func TestGuestAllocateTracksBuffer(t *testing.T) {
	ptr := guestAllocate(16)
	if ptr == 0 {
		t.Fatal("guestAllocate: got 0 pointer for positive size")
	}
	if len(allocations[ptr]) != 16 {
		t.Fatalf("guestAllocate: tracked buffer has len %d, want 16", len(allocations[ptr]))
	}

	guestDeallocate(ptr)
	if _, ok := allocations[ptr]; ok {
		t.Fatal("guestDeallocate: buffer still tracked after deallocate")
	}
}

func TestGuestAllocateZeroSizeReturnsNilPointer(t *testing.T) {
	if got := guestAllocate(0); got != 0 {
		t.Fatalf("guestAllocate(0): got %d, want 0", got)
	}
}
