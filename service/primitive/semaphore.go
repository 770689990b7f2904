package primitive

import (
	"sync"

	"github.com/gammazero/deque"
	"github.com/viant/kernel/model/task"
)

// Semaphore is a counting resource with a FIFO wait queue. A negative count
// is the number of parked tasks.
type Semaphore struct {
	mu      sync.Mutex
	count   int
	waiters deque.Deque[*task.Task]
}

// NewSemaphore creates a semaphore holding count instances.
func NewSemaphore(count int) *Semaphore {
	return &Semaphore{count: count}
}

// Up returns one instance, waking the longest waiter if any.
func (s *Semaphore) Up(p Processor) {
	s.mu.Lock()
	s.count++
	if s.count <= 0 && s.waiters.Len() > 0 {
		next := s.waiters.PopFront()
		s.mu.Unlock()
		p.Wake(next)
		return
	}
	s.mu.Unlock()
}

// Down takes one instance, parking the caller while none is left.
func (s *Semaphore) Down(p Processor) {
	s.mu.Lock()
	s.count--
	if s.count < 0 {
		s.waiters.PushBack(p.Current())
		s.mu.Unlock()
		p.Block()
		return
	}
	s.mu.Unlock()
}

// Count returns the current count.
func (s *Semaphore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
