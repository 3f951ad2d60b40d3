// Package resource provides the opaque handle table used by the engine.
//
// A handle is a pointer-sized integer naming an engine-owned value. Handle 0
// is reserved and always invalid, which lets the boundary use it as the
// creation-failure sentinel.
//
// # Handle Table
//
// The Table maps handles to Go values:
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	handle := table.Insert(category, value)
//
//	// Retrieve value by handle
//	value, ok := table.Get(handle)
//
//	// Remove and reclaim (release-exactly-once is the caller's contract)
//	value, ok := table.Remove(handle)
//
// # Categories
//
// Each entry carries a category ID so lookups can be restricted to a
// resource class:
//
//	value, ok := table.GetTyped(handle, catValue)
//
// # Observers
//
// Observers receive create/drop notifications, used by the engine to log
// lifecycle events and by leak checks in tests.
//
// # Memory Management
//
// Entries are not garbage collected while inserted. Whoever holds a handle
// must Remove it exactly once; Len reports the number of live entries so a
// test can verify nothing leaked. Removing a value that implements Dropper
// runs its destructor.
package resource
