package primitive

import (
	"sync"

	"github.com/gammazero/deque"
	"github.com/viant/kernel/model/task"
)

// Condvar is a FIFO queue of tasks waiting for a condition.
type Condvar struct {
	mu      sync.Mutex
	waiters deque.Deque[*task.Task]
}

// NewCondvar creates an empty condition variable.
func NewCondvar() *Condvar {
	return &Condvar{}
}

// Signal wakes exactly one waiter, if any.
func (c *Condvar) Signal(p Processor) {
	c.mu.Lock()
	if c.waiters.Len() == 0 {
		c.mu.Unlock()
		return
	}
	next := c.waiters.PopFront()
	c.mu.Unlock()
	p.Wake(next)
}

// Park queues the current task and blocks it until signalled.
func (c *Condvar) Park(p Processor) {
	c.mu.Lock()
	c.waiters.PushBack(p.Current())
	c.mu.Unlock()
	p.Block()
}

// Wait releases m, parks until signalled and reacquires m before returning.
func (c *Condvar) Wait(p Processor, m Mutex) {
	m.Unlock(p)
	c.Park(p)
	m.Lock(p)
}

// WaitCount returns the number of parked tasks.
func (c *Condvar) WaitCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiters.Len()
}
