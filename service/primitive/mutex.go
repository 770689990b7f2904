package primitive

import (
	"sync"

	"github.com/gammazero/deque"
	"github.com/viant/kernel/model/task"
)

// Mutex is a binary lock held by at most one task.
type Mutex interface {
	Lock(p Processor)
	Unlock(p Processor)
	// Owner returns the holding task or nil.
	Owner() *task.Task
}

// NewMutex returns a blocking or a spinning mutex.
func NewMutex(blocking bool) Mutex {
	if blocking {
		return &BlockingMutex{}
	}
	return &SpinMutex{}
}

// SpinMutex polls the lock, yielding the CPU between attempts.
type SpinMutex struct {
	mu    sync.Mutex
	owner *task.Task
}

// Lock acquires the mutex, yielding until it becomes free.
func (m *SpinMutex) Lock(p Processor) {
	for {
		m.mu.Lock()
		if m.owner == nil {
			m.owner = p.Current()
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()
		p.Yield()
	}
}

// Unlock releases the mutex.
func (m *SpinMutex) Unlock(_ Processor) {
	m.mu.Lock()
	m.owner = nil
	m.mu.Unlock()
}

// Owner returns the holding task.
func (m *SpinMutex) Owner() *task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owner
}

// BlockingMutex parks contending tasks in FIFO order and hands the lock
// directly to the first waiter on unlock.
type BlockingMutex struct {
	mu      sync.Mutex
	owner   *task.Task
	waiters deque.Deque[*task.Task]
}

// Lock acquires the mutex or parks the caller until it is handed over.
func (m *BlockingMutex) Lock(p Processor) {
	current := p.Current()
	m.mu.Lock()
	if m.owner == nil {
		m.owner = current
		m.mu.Unlock()
		return
	}
	m.waiters.PushBack(current)
	m.mu.Unlock()
	p.Block()
}

// Unlock passes ownership to the next waiter, or frees the mutex.
func (m *BlockingMutex) Unlock(p Processor) {
	m.mu.Lock()
	if m.waiters.Len() == 0 {
		m.owner = nil
		m.mu.Unlock()
		return
	}
	next := m.waiters.PopFront()
	m.owner = next
	m.mu.Unlock()
	p.Wake(next)
}

// Owner returns the holding task.
func (m *BlockingMutex) Owner() *task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owner
}

// WaitCount returns the number of parked tasks.
func (m *BlockingMutex) WaitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waiters.Len()
}
