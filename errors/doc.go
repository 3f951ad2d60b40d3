// Package errors provides the structured error types used by the cue-runtime
// binding.
//
// Errors are categorized by Phase (where the failure occurred) and Kind
// (failure category). All errors implement the standard error interface and
// support errors.Is/As.
//
// Foreign errors — diagnostics produced by the engine and carried across the
// boundary as opaque handles — are resolved lazily: the human-readable
// message is fetched from the engine only when Error() is called, so a
// foreign error that is constructed but never displayed never pays for the
// cross-boundary string call. The engine's diagnostic text is surfaced
// verbatim.
package errors
