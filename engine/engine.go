package engine

import (
	"errors"
	"sync"
	"unsafe"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"go.uber.org/zap"

	"github.com/wippyai/cue-runtime/abi"
	"github.com/wippyai/cue-runtime/resource"
)

// Resource categories within the engine's handle tables.
const (
	catContext uint32 = iota + 1
	catValue
	catError
)

var errUnknownHandle = errors.New("unknown handle")

// session is the per-context evaluation state. Values produced by different
// cue contexts cannot be mixed, so every value remembers the session that
// created it implicitly through the evaluator it was built with.
type session struct {
	cc *cue.Context
}

// Engine is an in-process CUE runtime. The binding reaches it exclusively
// through the function table returned by Table; everything else is engine
// internals.
type Engine struct {
	resources *resource.Table // sessions and values, released via Free
	errs      *resource.Table // error objects, separate handle space
	alloc     *allocator
	log       *zap.Logger
	table     *abi.Table
}

// Stats reports the engine's live resource counts, used to verify that a
// caller released everything it acquired.
type Stats struct {
	Handles int // live session + value handles
	Errors  int // live error handles
	Buffers int // outstanding allocator buffers
}

// New creates an isolated engine.
func New() *Engine {
	e := &Engine{
		resources: resource.NewTable(),
		errs:      resource.NewTable(),
		alloc:     newAllocator(),
		log:       Logger(),
	}
	e.resources.Subscribe(e)
	e.table = &abi.Table{
		NewCtx:        e.newCtx,
		Free:          e.free,
		FromInt64:     e.fromInt64,
		FromUint64:    e.fromUint64,
		FromBool:      e.fromBool,
		FromDouble:    e.fromDouble,
		FromString:    e.fromString,
		FromBytes:     e.fromBytes,
		CompileString: e.compileString,
		CompileBytes:  e.compileBytes,
		DecInt64:      e.decInt64,
		DecUint64:     e.decUint64,
		DecBool:       e.decBool,
		DecDouble:     e.decDouble,
		DecString:     e.decString,
		DecBytes:      e.decBytes,
		DecJSON:       e.decJSON,
		DecYAML:       e.decYAML,
		Unify:         e.unify,
		Validate:      e.validate,
		IsEqual:       e.isEqual,
		ErrorString:   e.errorString,
		LibcFree:      e.libcFree,
	}
	return e
}

var (
	defaultEngine *Engine
	defaultOnce   sync.Once
)

// Default returns the table of the shared process-wide engine. Most callers
// want this; tests that count live resources build their own via New.
func Default() *abi.Table {
	defaultOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine.Table()
}

// Table returns the engine's boundary function table. The table is fixed
// for the lifetime of the engine.
func (e *Engine) Table() *abi.Table {
	return e.table
}

// Stats returns the engine's live resource counts.
func (e *Engine) Stats() Stats {
	return Stats{
		Handles: e.resources.Len(),
		Errors:  e.errs.Len(),
		Buffers: e.alloc.live(),
	}
}

// Close drops every live resource. Outstanding handles become invalid.
func (e *Engine) Close() error {
	if err := e.resources.Close(); err != nil {
		return err
	}
	return e.errs.Close()
}

// OnResourceEvent implements resource.Observer for lifecycle logging.
func (e *Engine) OnResourceEvent(ev resource.Event) {
	switch ev.Type {
	case resource.EventCreated:
		e.log.Debug("resource created",
			zap.Uintptr("handle", uintptr(ev.Handle)),
			zap.Uint32("category", ev.Category))
	case resource.EventDropped:
		e.log.Debug("resource dropped",
			zap.Uintptr("handle", uintptr(ev.Handle)),
			zap.Uint32("category", ev.Category))
	}
}

func (e *Engine) newCtx() abi.Ctx {
	s := &session{cc: cuecontext.New()}
	return abi.Ctx(e.resources.Insert(catContext, s))
}

// free releases a session or value handle. Error handles live in their own
// table and are reclaimed with the engine.
func (e *Engine) free(h uintptr) {
	if _, ok := e.resources.Remove(resource.Handle(h)); !ok {
		e.log.Debug("free of unknown handle", zap.Uintptr("handle", h))
	}
}

func (e *Engine) libcFree(p unsafe.Pointer) {
	if !e.alloc.free(p) {
		e.log.Debug("free of unknown buffer")
	}
}

func (e *Engine) session(h abi.Ctx) (*session, bool) {
	v, ok := e.resources.GetTyped(resource.Handle(h), catContext)
	if !ok {
		return nil, false
	}
	return v.(*session), true
}

func (e *Engine) value(h abi.Value) (cue.Value, bool) {
	v, ok := e.resources.GetTyped(resource.Handle(h), catValue)
	if !ok {
		return cue.Value{}, false
	}
	return v.(cue.Value), true
}

func (e *Engine) storeValue(v cue.Value) abi.Value {
	return abi.Value(e.resources.Insert(catValue, v))
}

// newError registers an error object and returns its handle. Error handles
// occupy a handle space of their own; zero still means "no error".
func (e *Engine) newError(err error) abi.Error {
	return abi.Error(e.errs.Insert(catError, err))
}

// errorString resolves an error handle to a malloc-style C string owned by
// the caller, or nil if the handle is unknown.
func (e *Engine) errorString(h abi.Error) *byte {
	v, ok := e.errs.GetTyped(resource.Handle(h), catError)
	if !ok {
		return nil
	}
	return e.alloc.newCString(v.(error).Error())
}
