package engine

import (
	"sync"
	"unsafe"
)

// allocator hands out the malloc-style buffers returned through the table's
// out-pointers. Each buffer is registered under its base address so it stays
// reachable until the caller releases it through LibcFree; the live count
// backs the leak accounting in Stats.
type allocator struct {
	mu     sync.Mutex
	blocks map[*byte][]byte
}

func newAllocator() *allocator {
	return &allocator{
		blocks: make(map[*byte][]byte),
	}
}

// newCString allocates a NUL-terminated copy of s and returns its base
// pointer. Ownership transfers to the caller.
func (a *allocator) newCString(s string) *byte {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return a.retain(buf)
}

// newBytes allocates a copy of b and returns its base pointer and length.
// The backing buffer always has at least one byte so empty results still
// carry a stable, freeable address.
func (a *allocator) newBytes(b []byte) (unsafe.Pointer, uintptr) {
	buf := make([]byte, len(b)+1)
	copy(buf, b)
	return unsafe.Pointer(a.retain(buf)), uintptr(len(b))
}

func (a *allocator) retain(buf []byte) *byte {
	p := &buf[0]
	a.mu.Lock()
	a.blocks[p] = buf
	a.mu.Unlock()
	return p
}

// free releases a buffer previously returned by this allocator. Freeing nil
// is a no-op; freeing an unknown address reports false.
func (a *allocator) free(p unsafe.Pointer) bool {
	if p == nil {
		return true
	}
	b := (*byte)(p)
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.blocks[b]; !ok {
		return false
	}
	delete(a.blocks, b)
	return true
}

// live returns the number of outstanding buffers.
func (a *allocator) live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.blocks)
}
