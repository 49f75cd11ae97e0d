// Package reftable implements the host-side storage behind transient native
// references: a handle table with a free list, lifecycle observers and a
// stack of bounded frames that own the handles created inside them.
//
// Handle 0 is reserved and always invalid. A Stack is used by a single
// goroutine; it performs no locking.
package reftable
