// Package progress keeps aggregated kernel counters: tasks spawned and
// exited, dispatches, blocks, refused acquisitions and processes.
package progress
