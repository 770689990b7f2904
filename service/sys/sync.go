package sys

import (
	"errors"

	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/service/ledger"
	"github.com/viant/kernel/service/primitive"
)

// MutexCreate creates a mutex and returns its id; blocking mutexes park
// waiters, the others spin by yielding.
func (t *Thread) MutexCreate(blocking bool) int {
	span := t.enter(SysMutexCreate)
	var id int
	_ = t.process.Access(func(l *ledger.Ledger) error {
		id = l.CreateMutex(blocking)
		return nil
	})
	return t.leave(span, id)
}

// MutexLock acquires mutex id.
func (t *Thread) MutexLock(id int) int {
	span := t.enter(SysMutexLock)
	return t.leave(span, t.lockMutex(id))
}

func (t *Thread) lockMutex(id int) int {
	var m primitive.Mutex
	err := t.process.Access(func(l *ledger.Ledger) (err error) {
		if m, err = l.Mutex(id); err != nil {
			return err
		}
		return l.Reserve(t.task, task.KindMutex, id)
	})
	if err != nil {
		return t.fail(err)
	}
	// The reserved demand stays visible to the deadlock check while the
	// task waits; it becomes an allotment only once the lock is held.
	m.Lock(t.service.cpu)
	t.commit(task.KindMutex, id)
	return 0
}

// MutexUnlock releases mutex id; only its holder may release it.
func (t *Thread) MutexUnlock(id int) int {
	span := t.enter(SysMutexUnlock)
	var m primitive.Mutex
	err := t.process.Access(func(l *ledger.Ledger) (err error) {
		if m, err = l.Mutex(id); err != nil {
			return err
		}
		if m.Owner() != t.task {
			return errNotOwner
		}
		return l.Release(t.task, task.KindMutex, id)
	})
	if err != nil {
		return t.leave(span, t.fail(err))
	}
	m.Unlock(t.service.cpu)
	return t.leave(span, 0)
}

// SemaphoreCreate creates a semaphore holding count instances and returns its id.
func (t *Thread) SemaphoreCreate(count int) int {
	span := t.enter(SysSemaphoreCreate)
	if count < 0 {
		return t.leave(span, Failed)
	}
	var id int
	_ = t.process.Access(func(l *ledger.Ledger) error {
		id = l.CreateSemaphore(count)
		return nil
	})
	return t.leave(span, id)
}

// SemaphoreUp returns one instance to semaphore id.
func (t *Thread) SemaphoreUp(id int) int {
	span := t.enter(SysSemaphoreUp)
	var s *primitive.Semaphore
	err := t.process.Access(func(l *ledger.Ledger) (err error) {
		if s, err = l.Semaphore(id); err != nil {
			return err
		}
		return l.Release(t.task, task.KindSemaphore, id)
	})
	if err != nil {
		return t.leave(span, t.fail(err))
	}
	s.Up(t.service.cpu)
	return t.leave(span, 0)
}

// SemaphoreDown takes one instance of semaphore id, waiting while none is left.
func (t *Thread) SemaphoreDown(id int) int {
	span := t.enter(SysSemaphoreDown)
	var s *primitive.Semaphore
	err := t.process.Access(func(l *ledger.Ledger) (err error) {
		if s, err = l.Semaphore(id); err != nil {
			return err
		}
		return l.Reserve(t.task, task.KindSemaphore, id)
	})
	if err != nil {
		return t.leave(span, t.fail(err))
	}
	s.Down(t.service.cpu)
	t.commit(task.KindSemaphore, id)
	return t.leave(span, 0)
}

// CondvarCreate creates a condition variable and returns its id.
func (t *Thread) CondvarCreate() int {
	span := t.enter(SysCondvarCreate)
	var id int
	_ = t.process.Access(func(l *ledger.Ledger) error {
		id = l.CreateCondvar()
		return nil
	})
	return t.leave(span, id)
}

// CondvarSignal wakes one waiter of condvar id.
func (t *Thread) CondvarSignal(id int) int {
	span := t.enter(SysCondvarSignal)
	var c *primitive.Condvar
	err := t.process.Access(func(l *ledger.Ledger) (err error) {
		c, err = l.Condvar(id)
		return err
	})
	if err != nil {
		return t.leave(span, t.fail(err))
	}
	c.Signal(t.service.cpu)
	return t.leave(span, 0)
}

// CondvarWait releases mutex mid, waits for a signal on condvar cid and
// acquires mid again; the reacquisition is subject to deadlock detection.
func (t *Thread) CondvarWait(cid, mid int) int {
	span := t.enter(SysCondvarWait)
	var c *primitive.Condvar
	var m primitive.Mutex
	err := t.process.Access(func(l *ledger.Ledger) (err error) {
		if c, err = l.Condvar(cid); err != nil {
			return err
		}
		if m, err = l.Mutex(mid); err != nil {
			return err
		}
		if m.Owner() != t.task {
			return errNotOwner
		}
		return l.Release(t.task, task.KindMutex, mid)
	})
	if err != nil {
		return t.leave(span, t.fail(err))
	}
	m.Unlock(t.service.cpu)
	c.Park(t.service.cpu)
	return t.leave(span, t.lockMutex(mid))
}

// EnableDeadlockDetect turns detection on (1) or off (0) for the calling process.
func (t *Thread) EnableDeadlockDetect(flag int) int {
	span := t.enter(SysEnableDeadlockDetect)
	if flag != 0 && flag != 1 {
		return t.leave(span, Failed)
	}
	_ = t.process.Access(func(l *ledger.Ledger) error {
		l.SetDetection(flag == 1)
		return nil
	})
	return t.leave(span, 0)
}

var errNotOwner = errors.New("sys: mutex not held by caller")

func (t *Thread) commit(kind task.Kind, id int) {
	_ = t.process.Access(func(l *ledger.Ledger) error {
		l.Commit(t.task, kind, id)
		return nil
	})
}

func (t *Thread) fail(err error) int {
	if errors.Is(err, ledger.ErrDeadlock) {
		t.service.reject(t.task, err)
		return Deadlock
	}
	return Failed
}
