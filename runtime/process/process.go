// Package process holds the kernel's process record: its threads, its
// resource ledger and the guard that serialises ledger access.
package process

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/viant/kernel/internal/slot"
	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/service/ledger"
	"github.com/viant/kernel/service/memory"
)

// Process state constants
const (
	StateRunning = "running"
	StateExited  = "exited"
)

var (
	// ErrUnknownTask is returned for tids that do not name a thread of the process.
	ErrUnknownTask = errors.New("process: unknown task")
	// ErrRunning is returned when reaping a thread that has not exited.
	ErrRunning = errors.New("process: task still running")
)

// Process represents a user program and its threads
type Process struct {
	PID        int           `json:"pid"`
	Name       string        `json:"name"`
	ExitCode   int           `json:"exitCode"`
	CreatedAt  time.Time     `json:"createdAt"`
	FinishedAt *time.Time    `json:"finishedAt,omitempty"`
	Space      *memory.Space `json:"-"`

	guard  sync.Mutex
	state  string
	tasks  slot.Map[*task.Task]
	exited bitset.BitSet
	ledger *ledger.Ledger
}

// New creates a running process with an empty ledger.
func New(pid int, name string, space *memory.Space) *Process {
	p := &Process{PID: pid, Name: name, state: StateRunning, CreatedAt: time.Now(), Space: space}
	p.ledger = ledger.New(p.liveTasks)
	return p
}

// Access runs fn holding the process guard.
func (p *Process) Access(fn func(l *ledger.Ledger) error) error {
	p.guard.Lock()
	defer p.guard.Unlock()
	return fn(p.ledger)
}

// NewTask allocates a thread in the lowest free tid slot.
func (p *Process) NewTask(name string, priority uint64) *task.Task {
	p.guard.Lock()
	defer p.guard.Unlock()
	t := task.New(p.PID, -1, priority)
	t.Name = name
	t.TID = p.tasks.Insert(t)
	return t
}

// Task returns the thread stored under tid.
func (p *Process) Task(tid int) (*task.Task, bool) {
	p.guard.Lock()
	defer p.guard.Unlock()
	return p.tasks.Get(tid)
}

// Tasks returns every thread that has not been reaped.
func (p *Process) Tasks() []*task.Task {
	p.guard.Lock()
	defer p.guard.Unlock()
	var result []*task.Task
	p.tasks.Range(func(_ int, t *task.Task) bool {
		result = append(result, t)
		return true
	})
	return result
}

// Exit records that thread tid finished with code. When it was the last
// live thread the process exits and its ledger is cleared; Exit then
// reports true.
func (p *Process) Exit(tid, code int) bool {
	p.guard.Lock()
	defer p.guard.Unlock()
	if _, ok := p.tasks.Get(tid); !ok || p.exited.Test(uint(tid)) {
		return false
	}
	p.exited.Set(uint(tid))
	if tid == 0 {
		p.ExitCode = code
	}
	if int(p.exited.Count()) < p.tasks.Count() {
		return false
	}
	now := time.Now()
	p.state = StateExited
	p.FinishedAt = &now
	p.ledger.Clear()
	return true
}

// Reap frees the slot of an exited thread and returns its exit code.
func (p *Process) Reap(tid int) (int, error) {
	p.guard.Lock()
	defer p.guard.Unlock()
	t, ok := p.tasks.Get(tid)
	if !ok {
		return 0, fmt.Errorf("tid %d: %w", tid, ErrUnknownTask)
	}
	if !p.exited.Test(uint(tid)) {
		return 0, fmt.Errorf("tid %d: %w", tid, ErrRunning)
	}
	p.tasks.Remove(tid)
	p.exited.Clear(uint(tid))
	return t.ExitCode, nil
}

// State returns StateRunning or StateExited.
func (p *Process) State() string {
	p.guard.Lock()
	defer p.guard.Unlock()
	return p.state
}

// liveTasks is called by the ledger with the guard held.
func (p *Process) liveTasks() []*task.Task {
	var result []*task.Task
	p.tasks.Range(func(tid int, t *task.Task) bool {
		if !p.exited.Test(uint(tid)) {
			result = append(result, t)
		}
		return true
	})
	return result
}
