package engine

import (
	"unsafe"

	"cuelang.org/go/encoding/yaml"

	"github.com/wippyai/cue-runtime/abi"
)

// Scalar decoders. Each requires the value to hold a node of the matching
// kind; a mismatch or a non-concrete node produces an error handle. Out
// parameters are written only on success.

func (e *Engine) decInt64(h abi.Value, out *int64) abi.Error {
	v, ok := e.value(h)
	if !ok {
		return e.newError(errUnknownHandle)
	}
	n, err := v.Int64()
	if err != nil {
		return e.newError(err)
	}
	*out = n
	return 0
}

func (e *Engine) decUint64(h abi.Value, out *uint64) abi.Error {
	v, ok := e.value(h)
	if !ok {
		return e.newError(errUnknownHandle)
	}
	n, err := v.Uint64()
	if err != nil {
		return e.newError(err)
	}
	*out = n
	return 0
}

func (e *Engine) decBool(h abi.Value, out *bool) abi.Error {
	v, ok := e.value(h)
	if !ok {
		return e.newError(errUnknownHandle)
	}
	b, err := v.Bool()
	if err != nil {
		return e.newError(err)
	}
	*out = b
	return 0
}

func (e *Engine) decDouble(h abi.Value, out *float64) abi.Error {
	v, ok := e.value(h)
	if !ok {
		return e.newError(errUnknownHandle)
	}
	f, err := v.Float64()
	if err != nil {
		return e.newError(err)
	}
	*out = f
	return 0
}

// decString writes a NUL-terminated allocator buffer; ownership transfers
// to the caller.
func (e *Engine) decString(h abi.Value, out **byte) abi.Error {
	v, ok := e.value(h)
	if !ok {
		return e.newError(errUnknownHandle)
	}
	s, err := v.String()
	if err != nil {
		return e.newError(err)
	}
	*out = e.alloc.newCString(s)
	return 0
}

func (e *Engine) decBytes(h abi.Value, out *unsafe.Pointer, n *uintptr) abi.Error {
	v, ok := e.value(h)
	if !ok {
		return e.newError(errUnknownHandle)
	}
	b, err := v.Bytes()
	if err != nil {
		return e.newError(err)
	}
	*out, *n = e.alloc.newBytes(b)
	return 0
}

func (e *Engine) decJSON(h abi.Value, out *unsafe.Pointer, n *uintptr) abi.Error {
	v, ok := e.value(h)
	if !ok {
		return e.newError(errUnknownHandle)
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return e.newError(err)
	}
	*out, *n = e.alloc.newBytes(b)
	return 0
}

func (e *Engine) decYAML(h abi.Value, out *unsafe.Pointer, n *uintptr) abi.Error {
	v, ok := e.value(h)
	if !ok {
		return e.newError(errUnknownHandle)
	}
	b, err := yaml.Encode(v)
	if err != nil {
		return e.newError(err)
	}
	*out, *n = e.alloc.newBytes(b)
	return 0
}
