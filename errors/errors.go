package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseContext  Phase = "context"  // session creation
	PhaseEncode   Phase = "encode"   // native to engine
	PhaseCompile  Phase = "compile"  // source compilation
	PhaseDecode   Phase = "decode"   // engine to native
	PhaseValidate Phase = "validate" // validity checking
)

// Kind categorizes the error
type Kind string

const (
	KindCreationFailed Kind = "creation_failed" // zero handle from the engine
	KindNulByte        Kind = "nul_byte"        // interior NUL in a string transport
	KindInvalidUTF8    Kind = "invalid_utf8"    // decoded bytes not valid UTF-8
	KindForeign        Kind = "foreign"         // diagnostic carried as an engine error handle
)

// Error is the structured error type used throughout the binding.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string

	// resolve fetches the message for a foreign error on demand. It is
	// invoked on every Error() call rather than cached; the engine
	// returns the same message deterministically for a given handle and
	// error display is not a hot path.
	resolve func() string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	detail := e.Detail
	if detail == "" && e.resolve != nil {
		detail = e.resolve()
	}
	if detail != "" {
		b.WriteString(": ")
		b.WriteString(detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for the binding's error taxonomy

// ContextCreationFailed reports a zero handle from the session constructor.
// The engine gives no further diagnostic for this call.
func ContextCreationFailed() *Error {
	return &Error{
		Phase:  PhaseContext,
		Kind:   KindCreationFailed,
		Detail: "engine returned a zero context handle",
	}
}

// ValueCreationFailed reports a zero handle from a value constructor.
func ValueCreationFailed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCreationFailed,
		Detail: fmt.Sprintf("engine returned a zero value handle for %s", what),
	}
}

// NulByte reports an interior NUL byte in data routed through a
// NUL-terminated transport. Detected natively, before any engine call.
func NulByte(phase Phase, pos int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNulByte,
		Detail: fmt.Sprintf("string contains an interior NUL byte at position %d", pos),
	}
}

// InvalidUTF8 reports that bytes decoded from the engine are not valid
// UTF-8 where a string was required.
func InvalidUTF8(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// Foreign wraps an engine error handle whose message is produced by resolve.
// The message is fetched only when the error is displayed.
func Foreign(phase Phase, resolve func() string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindForeign,
		resolve: resolve,
	}
}
