package cueruntime

import (
	"strings"
	"sync/atomic"
	"unsafe"

	"github.com/wippyai/cue-runtime/abi"
	"github.com/wippyai/cue-runtime/engine"
	"github.com/wippyai/cue-runtime/errors"
)

// Context is an evaluation session. It exclusively owns one engine session
// handle and is the source of all Values.
//
// A Context must outlive every Value derived from it and must be closed
// exactly once; Close after the first call is a no-op.
type Context struct {
	api      *abi.Table
	handle   abi.Ctx
	released atomic.Bool
}

// NewContext creates a session on the shared process-wide engine.
func NewContext() (*Context, error) {
	return NewContextWith(engine.Default())
}

// NewContextWith creates a session on the engine behind the given table.
// Values from sessions on different tables must never be mixed.
func NewContextWith(api *abi.Table) (*Context, error) {
	h := api.NewCtx()
	if h == 0 {
		return nil, errors.ContextCreationFailed()
	}
	return &Context{api: api, handle: h}, nil
}

// Close releases the session handle. Only the first call reaches the
// engine; Values created from this context become invalid once it runs.
func (c *Context) Close() error {
	if c.released.CompareAndSwap(false, true) {
		c.api.Free(uintptr(c.handle))
	}
	return nil
}

// FromInt64 constructs a Value holding the given integer.
func (c *Context) FromInt64(v int64) (*Value, error) {
	return c.wrap(c.api.FromInt64(c.handle, v), "int64")
}

// FromUint64 constructs a Value holding the given unsigned integer.
func (c *Context) FromUint64(v uint64) (*Value, error) {
	return c.wrap(c.api.FromUint64(c.handle, v), "uint64")
}

// FromBool constructs a Value holding the given boolean.
func (c *Context) FromBool(v bool) (*Value, error) {
	return c.wrap(c.api.FromBool(c.handle, v), "bool")
}

// FromDouble constructs a Value holding the given float.
func (c *Context) FromDouble(v float64) (*Value, error) {
	return c.wrap(c.api.FromDouble(c.handle, v), "double")
}

// FromString constructs a Value holding the given string. The string
// crosses the boundary as a NUL-terminated transport, so interior NUL
// bytes are rejected here, before any engine call; use FromBytes for data
// that may contain them.
func (c *Context) FromString(v string) (*Value, error) {
	if i := strings.IndexByte(v, 0); i >= 0 {
		return nil, errors.NulByte(errors.PhaseEncode, i)
	}
	return c.wrap(c.api.FromString(c.handle, abi.CString(v)), "string")
}

// FromBytes constructs a Value holding the given bytes. Length travels
// explicitly, so arbitrary bytes including NULs are accepted.
func (c *Context) FromBytes(v []byte) (*Value, error) {
	p, n := abi.BytesPtr(v)
	return c.wrap(c.api.FromBytes(c.handle, p, n), "bytes")
}

// CompileString compiles CUE source text into a Value. Interior NUL bytes
// are rejected natively (the transport is NUL-terminated); use
// CompileBytes for source that may contain them. A compile error carries
// the engine's diagnostic, resolved lazily on display.
//
// Success means the source parsed and built to a node — not that the node
// is free of internal conflicts. Validate distinguishes the two.
func (c *Context) CompileString(src string) (*Value, error) {
	if i := strings.IndexByte(src, 0); i >= 0 {
		return nil, errors.NulByte(errors.PhaseCompile, i)
	}
	var out abi.Value
	if errh := c.api.CompileString(c.handle, abi.CString(src), 0, &out); errh != 0 {
		return nil, foreignError(c.api, errors.PhaseCompile, errh)
	}
	return &Value{api: c.api, handle: out}, nil
}

// CompileBytes compiles CUE source given as bytes. This is the only way to
// compile source containing NUL bytes.
func (c *Context) CompileBytes(src []byte) (*Value, error) {
	p, n := abi.BytesPtr(src)
	var out abi.Value
	if errh := c.api.CompileBytes(c.handle, p, n, 0, &out); errh != 0 {
		return nil, foreignError(c.api, errors.PhaseCompile, errh)
	}
	return &Value{api: c.api, handle: out}, nil
}

func (c *Context) wrap(h abi.Value, what string) (*Value, error) {
	if h == 0 {
		return nil, errors.ValueCreationFailed(errors.PhaseEncode, what)
	}
	return &Value{api: c.api, handle: h}, nil
}

// foreignError wraps an engine error handle. The diagnostic is fetched
// across the boundary only when the error is displayed, and the malloc'd
// string is copied and released on every fetch.
func foreignError(api *abi.Table, phase errors.Phase, h abi.Error) *errors.Error {
	return errors.Foreign(phase, func() string {
		p := api.ErrorString(h)
		if p == nil {
			return "unknown cue error"
		}
		msg := abi.GoString(p)
		api.LibcFree(unsafe.Pointer(p))
		return string(msg)
	})
}
