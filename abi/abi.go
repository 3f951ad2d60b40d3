package abi

import "unsafe"

// Ctx is an opaque handle to an evaluation session. Zero means creation
// failed.
type Ctx uintptr

// Value is an opaque handle to a lattice node. Zero means creation failed.
// A non-zero Value may still name the bottom (conflict) element; only
// Validate distinguishes the two.
type Value uintptr

// Error is an opaque handle to an engine error object. Zero means no error.
type Error uintptr

// Validate option bits, passed as the opts word to Table.Validate.
// Zero requests default validation: constraints pass, bottom fails.
const (
	ValidateConcrete uintptr = 1 << iota // require a concrete value
	ValidateFinal                        // disallow incomplete fields
)

// Table is the fixed boundary function table. All engine internals sit
// behind it; the binding layer never sees anything but these entry points.
//
// Every function is synchronous and must be non-nil in a usable table.
type Table struct {
	// NewCtx creates an evaluation session. Returns 0 on failure; no
	// further diagnostic is available for this call.
	NewCtx func() Ctx

	// Free releases the resource named by a Ctx or Value handle. The
	// caller must guarantee a single call per handle; Free is the only
	// release entry point for handles and must never be given a buffer
	// pointer.
	Free func(h uintptr)

	// Scalar constructors. Each returns 0 on failure (resource
	// exhaustion; never for well-typed in-range scalars).
	FromInt64  func(ctx Ctx, v int64) Value
	FromUint64 func(ctx Ctx, v uint64) Value
	FromBool   func(ctx Ctx, v bool) Value
	FromDouble func(ctx Ctx, v float64) Value

	// FromString takes a NUL-terminated string. The engine reads up to
	// the first NUL byte; the caller is responsible for rejecting
	// interior NULs before the call.
	FromString func(ctx Ctx, s *byte) Value

	// FromBytes takes an explicit pointer+length and accepts arbitrary
	// bytes including interior NULs.
	FromBytes func(ctx Ctx, p unsafe.Pointer, n uintptr) Value

	// CompileString compiles NUL-terminated source text. A non-zero
	// Error signals a parse or build failure; on success *out holds the
	// new Value handle.
	CompileString func(ctx Ctx, src *byte, opts uintptr, out *Value) Error

	// CompileBytes compiles pointer+length source and is the only way to
	// compile text containing interior NUL bytes.
	CompileBytes func(ctx Ctx, p unsafe.Pointer, n uintptr, opts uintptr, out *Value) Error

	// Scalar decoders. A non-zero Error signals a kind mismatch or a
	// non-concrete value; the out parameter is written only on success.
	DecInt64  func(v Value, out *int64) Error
	DecUint64 func(v Value, out *uint64) Error
	DecBool   func(v Value, out *bool) Error
	DecDouble func(v Value, out *float64) Error

	// DecString writes a NUL-terminated, engine-allocated buffer to
	// *out. Ownership transfers to the caller, who must release it with
	// LibcFree after copying.
	DecString func(v Value, out **byte) Error

	// DecBytes, DecJSON and DecYAML write an engine-allocated buffer and
	// its length. Same ownership transfer as DecString.
	DecBytes func(v Value, out *unsafe.Pointer, n *uintptr) Error
	DecJSON  func(v Value, out *unsafe.Pointer, n *uintptr) Error
	DecYAML  func(v Value, out *unsafe.Pointer, n *uintptr) Error

	// Unify returns the lattice meet of a and b. Total: the result is a
	// valid handle even for incompatible inputs, in which case it names
	// the bottom element and fails Validate.
	Unify func(a, b Value) Value

	// Validate reports whether v is a well-formed node. A non-zero Error
	// signals bottom, or an unmet option requirement.
	Validate func(v Value, opts uintptr) Error

	// IsEqual reports structural equality of the named nodes, not handle
	// equality.
	IsEqual func(a, b Value) bool

	// ErrorString returns the diagnostic for an error handle as a
	// NUL-terminated, engine-allocated string, or nil if none is
	// available. The caller must release a non-nil result with LibcFree.
	ErrorString func(e Error) *byte

	// LibcFree releases a buffer obtained from DecString, DecBytes,
	// DecJSON, DecYAML or ErrorString. Never pass it a handle.
	LibcFree func(p unsafe.Pointer)
}
