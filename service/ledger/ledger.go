package ledger

import (
	"fmt"

	"github.com/viant/kernel/internal/slot"
	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/service/primitive"
)

// Ledger is the resource table of one process.
type Ledger struct {
	mutexes    slot.Map[primitive.Mutex]
	semaphores slot.Map[*primitive.Semaphore]
	condvars   slot.Map[*primitive.Condvar]
	available  task.Vectors
	detect     bool
	tasks      func() []*task.Task
}

// New creates a ledger; tasks lists the live tasks considered by the deadlock check.
func New(tasks func() []*task.Task) *Ledger {
	if tasks == nil {
		tasks = func() []*task.Task { return nil }
	}
	return &Ledger{tasks: tasks}
}

// SetDetection turns the deadlock check on or off.
func (l *Ledger) SetDetection(enabled bool) {
	l.detect = enabled
}

// Detection reports whether the deadlock check is on.
func (l *Ledger) Detection() bool {
	return l.detect
}

// CreateMutex stores a new mutex with a single instance and returns its id.
func (l *Ledger) CreateMutex(blocking bool) int {
	id := l.mutexes.Insert(primitive.NewMutex(blocking))
	l.setAvailable(task.KindMutex, id, 1)
	return id
}

// CreateSemaphore stores a new semaphore holding count instances and returns its id.
func (l *Ledger) CreateSemaphore(count int) int {
	id := l.semaphores.Insert(primitive.NewSemaphore(count))
	l.setAvailable(task.KindSemaphore, id, count)
	return id
}

// CreateCondvar stores a new condition variable and returns its id.
func (l *Ledger) CreateCondvar() int {
	return l.condvars.Insert(primitive.NewCondvar())
}

// Mutex returns the mutex stored under id.
func (l *Ledger) Mutex(id int) (primitive.Mutex, error) {
	m, ok := l.mutexes.Get(id)
	if !ok {
		return nil, fmt.Errorf("mutex %d: %w", id, ErrInvalidID)
	}
	return m, nil
}

// Semaphore returns the semaphore stored under id.
func (l *Ledger) Semaphore(id int) (*primitive.Semaphore, error) {
	s, ok := l.semaphores.Get(id)
	if !ok {
		return nil, fmt.Errorf("semaphore %d: %w", id, ErrInvalidID)
	}
	return s, nil
}

// Condvar returns the condition variable stored under id.
func (l *Ledger) Condvar(id int) (*primitive.Condvar, error) {
	c, ok := l.condvars.Get(id)
	if !ok {
		return nil, fmt.Errorf("condvar %d: %w", id, ErrInvalidID)
	}
	return c, nil
}

// Available returns the unallotted instance count of a resource.
func (l *Ledger) Available(kind task.Kind, id int) int {
	return l.available.At(kind, id)
}

// Len returns the slot array length of kind, holes included.
func (l *Ledger) Len(kind task.Kind) int {
	if kind == task.KindSemaphore {
		return l.semaphores.Len()
	}
	return l.mutexes.Len()
}

// Clear drops every resource; the next create of each kind gets id 0.
func (l *Ledger) Clear() {
	l.mutexes = slot.Map[primitive.Mutex]{}
	l.semaphores = slot.Map[*primitive.Semaphore]{}
	l.condvars = slot.Map[*primitive.Condvar]{}
	l.available = task.Vectors{}
}

// Reserve records that t requests one instance of the resource. With
// detection on, a request that leaves the process without a safe completion
// order is withdrawn and ErrDeadlock is returned; no other state changes.
func (l *Ledger) Reserve(t *task.Task, kind task.Kind, id int) error {
	if err := l.validate(kind, id); err != nil {
		return err
	}
	t.Demand.Add(kind, id, 1)
	if l.detect && !l.Safe(l.tasks()) {
		t.Demand.Add(kind, id, -1)
		return fmt.Errorf("%v %d requested by %v: %w", kind, id, t, ErrDeadlock)
	}
	return nil
}

// Commit moves a reserved instance from available into t's allotment once
// the primitive granted it.
func (l *Ledger) Commit(t *task.Task, kind task.Kind, id int) {
	l.available.Add(kind, id, -1)
	t.Demand.Add(kind, id, -1)
	t.Allot.Add(kind, id, 1)
}

// Release returns one instance held by t. Semaphores may be released by
// tasks that never acquired them; their allotment does not go below zero.
func (l *Ledger) Release(t *task.Task, kind task.Kind, id int) error {
	if err := l.validate(kind, id); err != nil {
		return err
	}
	l.available.Add(kind, id, 1)
	if t.Allot.At(kind, id) > 0 {
		t.Allot.Add(kind, id, -1)
	}
	return nil
}

func (l *Ledger) validate(kind task.Kind, id int) error {
	var ok bool
	switch kind {
	case task.KindMutex:
		_, ok = l.mutexes.Get(id)
	case task.KindSemaphore:
		_, ok = l.semaphores.Get(id)
	}
	if !ok {
		return fmt.Errorf("%v %d: %w", kind, id, ErrInvalidID)
	}
	return nil
}

func (l *Ledger) setAvailable(kind task.Kind, id, count int) {
	l.available.Add(kind, id, count-l.available.At(kind, id))
}
