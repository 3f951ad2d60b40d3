// Package abi defines the fixed function table through which the binding
// drives the CUE engine, along with the opaque handle types that cross it.
//
// The boundary follows C calling conventions in spirit: every resource is
// named by a pointer-sized integer handle, variable-length results are
// returned as pointers into engine-allocated memory, and strings routed
// through NUL-terminated transports must not contain interior NUL bytes.
//
// # Handle spaces
//
// Three handle categories exist, each a distinct Go type so the compiler
// rejects cross-category use:
//
//	abi.Ctx    evaluation session
//	abi.Value  compiled or constructed lattice node
//	abi.Error  engine error object
//
// For Ctx and Value a zero handle means "creation failed". For Error a zero
// handle means "no error". The two sentinel meanings are kept in distinct
// types on purpose; never compare across categories.
//
// # Ownership
//
// Two independent release disciplines meet here and must not be conflated:
//
//   - Handles are released through Table.Free, exactly once.
//   - Buffers written through out-pointers (DecString, DecBytes, DecJSON,
//     DecYAML, ErrorString) are owned by the caller and released through
//     Table.LibcFree, exactly once, after copying.
//
// Calling Free on a buffer pointer or LibcFree on a handle is undefined
// behavior, as is any use of a handle or buffer after its release.
package abi
