package abi

import (
	"bytes"
	"testing"
	"unsafe"
)

func TestCStringRoundTrip(t *testing.T) {
	cases := []string{"", "hello", "héllo wörld", "\xff\xfe"}
	for _, s := range cases {
		p := CString(s)
		got := GoString(p)
		if string(got) != s {
			t.Fatalf("round trip of %q gave %q", s, got)
		}
	}
}

func TestCStringTerminated(t *testing.T) {
	p := CString("ab")
	if *(*byte)(unsafe.Add(unsafe.Pointer(p), 2)) != 0 {
		t.Fatal("missing NUL terminator")
	}
}

func TestGoStringNil(t *testing.T) {
	if got := GoString(nil); got != nil {
		t.Fatalf("expected nil, got %q", got)
	}
}

func TestGoStringStopsAtNul(t *testing.T) {
	buf := []byte{'a', 'b', 0, 'c'}
	got := GoString(&buf[0])
	if string(got) != "ab" {
		t.Fatalf("expected %q, got %q", "ab", got)
	}
}

func TestBytesPtr(t *testing.T) {
	b := []byte{0x00, 0xFF, 0x42}
	p, n := BytesPtr(b)
	if n != 3 {
		t.Fatalf("expected length 3, got %d", n)
	}
	if got := GoBytes(p, n); !bytes.Equal(got, b) {
		t.Fatalf("expected %x, got %x", b, got)
	}
}

func TestBytesPtrEmpty(t *testing.T) {
	p, n := BytesPtr(nil)
	if p != nil || n != 0 {
		t.Fatal("expected nil pointer and zero length for empty slice")
	}
	if got := GoBytes(p, n); len(got) != 0 {
		t.Fatalf("expected empty copy, got %x", got)
	}
}

func TestGoBytesCopies(t *testing.T) {
	b := []byte{1, 2, 3}
	p, n := BytesPtr(b)
	got := GoBytes(p, n)
	b[0] = 9
	if got[0] != 1 {
		t.Fatal("GoBytes must copy, not alias")
	}
}
