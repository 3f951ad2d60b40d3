// Package cueruntime binds a CUE evaluation engine to Go through a fixed
// boundary function table with opaque handles.
//
// The engine — parsing, the unification lattice, constraint propagation —
// is a black box behind [abi.Table]. This package owns the seam: it turns
// native values into engine handles, keeps them alive exactly as long as
// needed, turns them back into native types or serialized forms, and
// releases every resource exactly once.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	cueruntime/      Root package: Context and Value, the public API
//	├── abi/         The boundary function table and opaque handle types
//	├── engine/      In-process CUE engine backing the table
//	├── resource/    Handle table implementation
//	├── errors/      Structured error types
//	├── cmd/cueval/  CLI for evaluating and vetting CUE documents
//	└── examples/    Example programs
//
// # Quick Start
//
// Create a context, compile values, unify, validate:
//
//	ctx, err := cueruntime.NewContext()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	schema, err := ctx.CompileString(`{name: string, age: int & >=0}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer schema.Close()
//
//	data, err := ctx.CompileString(`{name: "alice", age: 30}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer data.Close()
//
//	merged := schema.Unify(data)
//	defer merged.Close()
//
//	if err := merged.Validate(); err != nil {
//	    log.Fatal(err) // data does not conform to schema
//	}
//	out, _ := merged.ToJSON()
//	fmt.Println(string(out))
//
// # Resource Lifecycle
//
// Context and Value each own one engine handle. Close releases the handle;
// the first Close wins and later calls are no-ops, so a deferred Close on
// every path is safe. A Value must never be used after the Context it was
// created from is closed — the binding does not track that relationship,
// it is the caller's contract (keep one Context per unit of work and close
// it last).
//
// # Unification Protocol
//
// Unify never fails: incompatible values produce the lattice's bottom
// element, a well-formed Value that fails Validate. Chain unifications
// freely and pay for a single validity check at the end.
//
// # Thread Safety
//
// Handles are plain integers and may be copied between goroutines, but a
// Context and the Values derived from it form a single-writer resource
// group: serialize access externally rather than sharing one Context
// across concurrently-calling goroutines.
package cueruntime
