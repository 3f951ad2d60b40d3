package cueruntime

import (
	"sync/atomic"
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/cue-runtime/abi"
	"github.com/wippyai/cue-runtime/errors"
)

// Value is a node in the engine's lattice. It owns one engine handle and is
// read-only: decoders, Unify and Validate never mutate it.
//
// A non-nil Value always wraps a non-zero handle, but the handle may name
// the bottom (conflict) element; Validate is the only way to tell.
type Value struct {
	api      *abi.Table
	handle   abi.Value
	released atomic.Bool
}

// Close releases the value handle. Only the first call reaches the engine.
func (v *Value) Close() error {
	if v.released.CompareAndSwap(false, true) {
		v.api.Free(uintptr(v.handle))
	}
	return nil
}

// ToInt64 decodes the value as an int64. Fails if the node is not an
// integer or does not fit.
func (v *Value) ToInt64() (int64, error) {
	var out int64
	if errh := v.api.DecInt64(v.handle, &out); errh != 0 {
		return 0, foreignError(v.api, errors.PhaseDecode, errh)
	}
	return out, nil
}

// ToUint64 decodes the value as a uint64. Fails if the node is not an
// integer or does not fit.
func (v *Value) ToUint64() (uint64, error) {
	var out uint64
	if errh := v.api.DecUint64(v.handle, &out); errh != 0 {
		return 0, foreignError(v.api, errors.PhaseDecode, errh)
	}
	return out, nil
}

// ToBool decodes the value as a bool. Fails if the node is not a boolean.
func (v *Value) ToBool() (bool, error) {
	var out bool
	if errh := v.api.DecBool(v.handle, &out); errh != 0 {
		return false, foreignError(v.api, errors.PhaseDecode, errh)
	}
	return out, nil
}

// ToDouble decodes the value as a float64. Fails if the node is not a
// number.
func (v *Value) ToDouble() (float64, error) {
	var out float64
	if errh := v.api.DecDouble(v.handle, &out); errh != 0 {
		return 0, foreignError(v.api, errors.PhaseDecode, errh)
	}
	return out, nil
}

// ToString decodes the value as a string. The engine's buffer is copied
// and released before the bytes are checked for valid UTF-8, a native
// check that makes no boundary call.
func (v *Value) ToString() (string, error) {
	var p *byte
	if errh := v.api.DecString(v.handle, &p); errh != 0 {
		return "", foreignError(v.api, errors.PhaseDecode, errh)
	}
	b := abi.GoString(p)
	v.api.LibcFree(unsafe.Pointer(p))
	if !utf8.Valid(b) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, b)
	}
	return string(b), nil
}

// ToBytes decodes the value as bytes. The returned slice is natively
// owned; the engine's buffer is released before returning.
func (v *Value) ToBytes() ([]byte, error) {
	return v.decBuffer(v.api.DecBytes)
}

// ToJSON encodes the value as JSON. Fails for non-concrete or bottom
// nodes.
func (v *Value) ToJSON() ([]byte, error) {
	return v.decBuffer(v.api.DecJSON)
}

// ToYAML encodes the value as YAML. Fails for non-concrete or bottom
// nodes.
func (v *Value) ToYAML() ([]byte, error) {
	return v.decBuffer(v.api.DecYAML)
}

func (v *Value) decBuffer(dec func(abi.Value, *unsafe.Pointer, *uintptr) abi.Error) ([]byte, error) {
	var p unsafe.Pointer
	var n uintptr
	if errh := dec(v.handle, &p, &n); errh != 0 {
		return nil, foreignError(v.api, errors.PhaseDecode, errh)
	}
	b := abi.GoBytes(p, n)
	v.api.LibcFree(p)
	return b, nil
}

// Unify returns the lattice meet of v and w: the most specific node
// consistent with both. Unify is total — incompatible inputs yield the
// bottom element, represented as an ordinary Value that fails Validate.
// Both operands must come from the same Context's engine.
func (v *Value) Unify(w *Value) *Value {
	return &Value{api: v.api, handle: v.api.Unify(v.handle, w.handle)}
}

// Validate reports whether the value is a well-formed node. This is the
// only operation that distinguishes a usable node from bottom; call it
// after unification or after compiling untrusted input before trusting
// decoded contents. The engine's diagnostic is preserved verbatim.
func (v *Value) Validate() error {
	return v.validate(0)
}

// ValidateConcrete is Validate with the additional requirement that the
// node is concrete: open constraints such as >0 fail.
func (v *Value) ValidateConcrete() error {
	return v.validate(abi.ValidateConcrete)
}

func (v *Value) validate(opts uintptr) error {
	if errh := v.api.Validate(v.handle, opts); errh != 0 {
		return foreignError(v.api, errors.PhaseValidate, errh)
	}
	return nil
}

// Equals reports structural equality: two Values compiled from different
// source text are equal when they denote the same lattice node. This is
// never handle comparison.
func (v *Value) Equals(w *Value) bool {
	return v.api.IsEqual(v.handle, w.handle)
}
