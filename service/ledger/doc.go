// Package ledger keeps the per-process accounting of synchronization
// resources: the slot arrays of mutexes, semaphores and condition variables,
// the available instance counts and the online deadlock check executed on
// every acquisition.
//
// The ledger is accounting only.  Whether a task actually waits is decided
// by the primitive it calls afterwards.  A Ledger is not safe for concurrent
// use; the owning process serialises access with its guard.
package ledger
