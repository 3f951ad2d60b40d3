package cueruntime

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/cue-runtime/abi"
	"github.com/wippyai/cue-runtime/engine"
	"github.com/wippyai/cue-runtime/errors"
)

// testContext builds a context on an isolated engine so tests can count
// live resources.
func testContext(t *testing.T) (*engine.Engine, *Context) {
	t.Helper()
	e := engine.New()
	ctx, err := NewContextWith(e.Table())
	if err != nil {
		t.Fatalf("NewContextWith failed: %v", err)
	}
	return e, ctx
}

func TestNewContext(t *testing.T) {
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestNewContextCreationFailed(t *testing.T) {
	tab := &abi.Table{
		NewCtx: func() abi.Ctx { return 0 },
	}
	_, err := NewContextWith(tab)
	if err == nil {
		t.Fatal("expected error for zero context handle")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseContext, Kind: errors.KindCreationFailed}) {
		t.Fatalf("wrong error: %v", err)
	}
}

func TestContextCloseReleasesOnce(t *testing.T) {
	frees := 0
	tab := &abi.Table{
		NewCtx: func() abi.Ctx { return 7 },
		Free:   func(h uintptr) { frees++ },
	}
	ctx, err := NewContextWith(tab)
	if err != nil {
		t.Fatalf("NewContextWith failed: %v", err)
	}

	ctx.Close()
	ctx.Close()
	ctx.Close()
	if frees != 1 {
		t.Fatalf("expected exactly 1 engine free, got %d", frees)
	}
}

func TestReleaseSafety(t *testing.T) {
	e, ctx := testContext(t)

	v1, err := ctx.FromInt64(1)
	if err != nil {
		t.Fatalf("FromInt64 failed: %v", err)
	}
	v2, err := ctx.CompileString("2")
	if err != nil {
		t.Fatalf("CompileString failed: %v", err)
	}
	u := v1.Unify(v2)

	// A decode that copies a buffer must leave no allocation behind.
	if _, err := v2.ToJSON(); err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	// Values and contexts can be released in any order.
	for _, c := range []interface{ Close() error }{v1, ctx, v2, u} {
		if err := c.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}

	st := e.Stats()
	if st.Handles != 0 {
		t.Fatalf("leaked %d handles", st.Handles)
	}
	if st.Buffers != 0 {
		t.Fatalf("leaked %d buffers", st.Buffers)
	}
}

func TestReleaseSafetyOnErrorPaths(t *testing.T) {
	e, ctx := testContext(t)

	if _, err := ctx.CompileString("a: ["); err == nil {
		t.Fatal("expected compile error")
	}
	if _, err := ctx.FromString("bad\x00data"); err == nil {
		t.Fatal("expected NUL rejection")
	}

	v, err := ctx.FromString("hello")
	if err != nil {
		t.Fatalf("FromString failed: %v", err)
	}
	if _, err := v.ToInt64(); err == nil {
		t.Fatal("expected kind mismatch")
	}

	v.Close()
	ctx.Close()

	st := e.Stats()
	if st.Handles != 0 {
		t.Fatalf("leaked %d handles on error paths", st.Handles)
	}
	if st.Buffers != 0 {
		t.Fatalf("leaked %d buffers on error paths", st.Buffers)
	}
}
