// Package scheduler implements the stride-scheduling ready queue.  Every
// admitted task advances its stride by BigStride/priority and the task with
// the smallest stride is always dispatched next.
package scheduler
