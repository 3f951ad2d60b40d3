package engine

import (
	"unsafe"

	"github.com/wippyai/cue-runtime/abi"
)

// Scalar constructors. Per the boundary contract these return a zero handle
// on failure and carry no further diagnostic; well-typed in-range scalars
// never fail.

func (e *Engine) fromInt64(ctx abi.Ctx, v int64) abi.Value {
	return e.encode(ctx, v)
}

func (e *Engine) fromUint64(ctx abi.Ctx, v uint64) abi.Value {
	return e.encode(ctx, v)
}

func (e *Engine) fromBool(ctx abi.Ctx, v bool) abi.Value {
	return e.encode(ctx, v)
}

func (e *Engine) fromDouble(ctx abi.Ctx, v float64) abi.Value {
	return e.encode(ctx, v)
}

// fromString reads a NUL-terminated string. Rejecting interior NULs is the
// caller's job; whatever precedes the first NUL is the value.
func (e *Engine) fromString(ctx abi.Ctx, s *byte) abi.Value {
	if s == nil {
		return 0
	}
	return e.encode(ctx, string(abi.GoString(s)))
}

func (e *Engine) fromBytes(ctx abi.Ctx, p unsafe.Pointer, n uintptr) abi.Value {
	return e.encode(ctx, abi.GoBytes(p, n))
}

func (e *Engine) encode(ctx abi.Ctx, x any) abi.Value {
	s, ok := e.session(ctx)
	if !ok {
		return 0
	}
	v := s.cc.Encode(x)
	if v.Err() != nil {
		return 0
	}
	return e.storeValue(v)
}
