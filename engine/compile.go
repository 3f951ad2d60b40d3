package engine

import (
	"unsafe"

	"cuelang.org/go/cue"

	"github.com/wippyai/cue-runtime/abi"
)

// compileString compiles NUL-terminated source. Compilation fails only when
// the source does not parse or build to a usable top-level node; a node
// whose fields conflict internally compiles fine and fails validation.
func (e *Engine) compileString(ctx abi.Ctx, src *byte, opts uintptr, out *abi.Value) abi.Error {
	return e.compile(ctx, abi.GoString(src), out)
}

func (e *Engine) compileBytes(ctx abi.Ctx, p unsafe.Pointer, n uintptr, opts uintptr, out *abi.Value) abi.Error {
	return e.compile(ctx, abi.GoBytes(p, n), out)
}

func (e *Engine) compile(ctx abi.Ctx, src []byte, out *abi.Value) abi.Error {
	s, ok := e.session(ctx)
	if !ok {
		return e.newError(errUnknownHandle)
	}
	v := s.cc.CompileBytes(src)
	if err := v.Err(); err != nil {
		return e.newError(err)
	}
	*out = e.storeValue(v)
	return 0
}

// unify computes the lattice meet of a and b. Total: incompatible inputs
// yield the bottom element, which is a stored value like any other and
// surfaces only through validate.
func (e *Engine) unify(ha, hb abi.Value) abi.Value {
	a, ok := e.value(ha)
	if !ok {
		return 0
	}
	b, ok := e.value(hb)
	if !ok {
		return 0
	}
	return e.storeValue(a.Unify(b))
}

func (e *Engine) validate(h abi.Value, opts uintptr) abi.Error {
	v, ok := e.value(h)
	if !ok {
		return e.newError(errUnknownHandle)
	}

	var options []cue.Option
	if opts&abi.ValidateConcrete != 0 {
		options = append(options, cue.Concrete(true))
	}
	if opts&abi.ValidateFinal != 0 {
		options = append(options, cue.Final())
	}

	if err := v.Validate(options...); err != nil {
		return e.newError(err)
	}
	return 0
}

// isEqual reports structural equality of the named nodes. Handles that name
// the same node through different source text compare equal.
func (e *Engine) isEqual(ha, hb abi.Value) bool {
	a, ok := e.value(ha)
	if !ok {
		return false
	}
	b, ok := e.value(hb)
	if !ok {
		return false
	}
	return a.Equals(b)
}
