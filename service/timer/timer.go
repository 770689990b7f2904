// Package timer schedules one-shot wake-ups for sleeping tasks.
package timer

import "time"

// Service runs fn once after d elapsed.
type Service interface {
	After(d time.Duration, fn func())
}

type afterFunc struct{}

func (afterFunc) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	time.AfterFunc(d, fn)
}

// New returns a timer backed by time.AfterFunc.
func New() Service {
	return afterFunc{}
}

// Func adapts a function to Service.
type Func func(d time.Duration, fn func())

// After calls f.
func (f Func) After(d time.Duration, fn func()) {
	f(d, fn)
}
