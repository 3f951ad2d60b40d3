package engine

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/wippyai/cue-runtime/abi"
)

func TestAllocatorCString(t *testing.T) {
	a := newAllocator()

	p := a.newCString("hello")
	if a.live() != 1 {
		t.Fatalf("expected 1 live buffer, got %d", a.live())
	}
	if got := abi.GoString(p); string(got) != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}

	if !a.free(unsafe.Pointer(p)) {
		t.Fatal("free of a live buffer failed")
	}
	if a.live() != 0 {
		t.Fatalf("expected 0 live buffers, got %d", a.live())
	}
}

func TestAllocatorDoubleFree(t *testing.T) {
	a := newAllocator()

	p := a.newCString("x")
	if !a.free(unsafe.Pointer(p)) {
		t.Fatal("first free failed")
	}
	if a.free(unsafe.Pointer(p)) {
		t.Fatal("second free should report an unknown buffer")
	}
}

func TestAllocatorFreeNil(t *testing.T) {
	a := newAllocator()
	if !a.free(nil) {
		t.Fatal("free(nil) should be a no-op success")
	}
}

func TestAllocatorBytes(t *testing.T) {
	a := newAllocator()

	data := []byte{0x00, 0xFF, 0x42}
	p, n := a.newBytes(data)
	if n != 3 {
		t.Fatalf("expected length 3, got %d", n)
	}
	if got := abi.GoBytes(p, n); !bytes.Equal(got, data) {
		t.Fatalf("expected %x, got %x", data, got)
	}
	if !a.free(p) {
		t.Fatal("free failed")
	}
}

func TestAllocatorEmptyBytes(t *testing.T) {
	a := newAllocator()

	p, n := a.newBytes(nil)
	if n != 0 {
		t.Fatalf("expected length 0, got %d", n)
	}
	if p == nil {
		t.Fatal("empty buffers must still have a freeable address")
	}
	if !a.free(p) {
		t.Fatal("free of empty buffer failed")
	}
}
