package core

import "sync/atomic"

// Clock is the process-wide global version counter V described by the
// data model: it advances once for every value-changing write to a
// signal or state property, never on a no-op (identity-equal) write.
// The zero value starts at version 0, ready to use.
type Clock struct {
	v atomic.Int64
}

// Now returns V without advancing it.
func (c *Clock) Now() int64 {
	return c.v.Load()
}

// Advance bumps V by one and returns the new value. Callers must only
// call this after confirming a write actually changes a value.
func (c *Clock) Advance() int64 {
	return c.v.Add(1)
}

// IDAllocator hands out the monotonically increasing node ids that
// determine default execution order within a batch. The zero value is
// ready to use; its first id is 1 (0 is reserved to mean "unassigned"
// for zero-value structs).
type IDAllocator struct {
	next atomic.Int64
}

// Next returns a fresh, strictly increasing id.
func (a *IDAllocator) Next() int64 {
	return a.next.Add(1)
}
