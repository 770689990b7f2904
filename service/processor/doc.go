// Package processor hosts the single CPU of the kernel.  Every task body
// runs on its own goroutine but only while it holds the permit handed out by
// the run loop, so exactly one task executes at a time and control changes
// hands only when the running task yields, blocks, sleeps or exits.
//
// The run loop takes the next task from the stride scheduler, grants it the
// permit and waits until the task switches out again.
package processor
