package scheduler

import (
	"sort"

	"github.com/viant/kernel/model/task"
)

// DefaultBigStride is the stride constant divided by a task's priority to get its pass.
const DefaultBigStride uint64 = 1 << 20

// Config represents scheduler configuration
type Config struct {
	BigStride uint64 `json:"bigStride" yaml:"bigStride"`
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{BigStride: DefaultBigStride}
}

// Manager is the ready queue. It is not safe for concurrent use; callers
// guard it with their own exclusive-access lock.
type Manager struct {
	bigStride uint64
	ready     []*task.Task
}

// New creates an empty ready queue
func New(config Config) *Manager {
	if config.BigStride == 0 {
		config.BigStride = DefaultBigStride
	}
	return &Manager{bigStride: config.BigStride}
}

// Pass returns the stride increment for priority. It is never below 1, so
// priorities above the big stride all advance like priority == big stride.
func (m *Manager) Pass(priority uint64) uint64 {
	if priority < task.MinPriority {
		priority = task.MinPriority
	}
	if priority > m.bigStride {
		return 1
	}
	return m.bigStride / priority
}

// Add admits t to the ready queue and advances its stride by one pass.
// When the advance would wrap, every queued stride is first rebased on the
// current minimum so that relative order survives; alone in the queue, t
// restarts from 0.
func (m *Manager) Add(t *task.Task) {
	pass := m.Pass(t.Priority)
	if t.Stride+pass <= t.Stride {
		if len(m.ready) == 0 {
			t.Stride = 0
		} else {
			m.sort()
			minStride := min(m.ready[0].Stride, t.Stride)
			for _, queued := range m.ready {
				queued.Stride -= minStride
			}
			t.Stride = t.Stride - minStride + pass
		}
	} else {
		t.Stride += pass
	}
	t.Status = task.StatusReady
	m.ready = append(m.ready, t)
}

// Fetch removes and returns the task with the smallest stride, or nil when
// the queue is empty. Equal strides leave in admission order.
func (m *Manager) Fetch() *task.Task {
	if len(m.ready) == 0 {
		return nil
	}
	m.sort()
	next := m.ready[0]
	m.ready[0] = nil
	m.ready = m.ready[1:]
	return next
}

// Len returns the number of ready tasks
func (m *Manager) Len() int {
	return len(m.ready)
}

func (m *Manager) sort() {
	sort.SliceStable(m.ready, func(i, j int) bool {
		return m.ready[i].Stride < m.ready[j].Stride
	})
}
