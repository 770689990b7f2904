// Package task defines the task control block shared by the scheduler, the
// processor and the synchronization ledger.
package task
