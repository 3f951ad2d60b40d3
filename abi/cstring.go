package abi

import "unsafe"

// CString returns a NUL-terminated copy of s suitable for passing through a
// string-transport entry point. The buffer is native-owned (garbage
// collected); it must only be kept alive for the duration of the call.
// Callers are responsible for rejecting interior NUL bytes first.
func CString(s string) *byte {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return &buf[0]
}

// BytesPtr returns the pointer+length pair for b as expected by the
// byte-transport entry points. The pointer stays valid as long as b does.
func BytesPtr(b []byte) (unsafe.Pointer, uintptr) {
	if len(b) == 0 {
		return nil, 0
	}
	return unsafe.Pointer(&b[0]), uintptr(len(b))
}

// GoString copies the NUL-terminated string at p into native storage and
// returns it without the terminator. Returns nil for a nil pointer. The
// foreign buffer is not released; the caller still owns it.
func GoString(p *byte) []byte {
	if p == nil {
		return nil
	}
	n := uintptr(0)
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return GoBytes(unsafe.Pointer(p), n)
}

// GoBytes copies n bytes at p into native storage. The foreign buffer is
// not released; the caller still owns it.
func GoBytes(p unsafe.Pointer, n uintptr) []byte {
	out := make([]byte, n)
	if n > 0 && p != nil {
		copy(out, unsafe.Slice((*byte)(p), n))
	}
	return out
}
