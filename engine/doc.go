// Package engine hosts the CUE evaluation runtime behind the boundary
// function table.
//
// Nothing in this package is visible to the binding except through
// [Engine.Table]: the binding holds opaque handles and calls the fixed
// entry points, exactly as it would against an out-of-process runtime.
// The engine itself evaluates CUE with cuelang.org/go.
//
// The engine maintains three kinds of state:
//
//   - A handle table for sessions and values (released via the table's
//     Free entry point).
//   - A separate handle table for error objects, so the "no error" zero
//     sentinel can never collide with a live session or value handle.
//   - A tracked allocator for the buffers returned through out-pointers
//     (released via LibcFree, never via Free).
//
// [Engine.Stats] exposes live counts for all three, which is how tests
// verify that a caller released everything it acquired.
package engine
