package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/kernel/model/task"
)

// fakeProcessor records scheduling calls instead of switching tasks.
type fakeProcessor struct {
	current *task.Task
	blocked []*task.Task
	woken   []*task.Task
	yields  int
	onYield func()
}

func (f *fakeProcessor) Current() *task.Task { return f.current }

func (f *fakeProcessor) Yield() {
	f.yields++
	if f.onYield != nil {
		f.onYield()
	}
}

func (f *fakeProcessor) Block() { f.blocked = append(f.blocked, f.current) }

func (f *fakeProcessor) Wake(t *task.Task) { f.woken = append(f.woken, t) }

func tasks(n int) []*task.Task {
	ret := make([]*task.Task, n)
	for i := range ret {
		ret[i] = task.New(1, i, 0)
	}
	return ret
}

func TestBlockingMutex(t *testing.T) {
	ts := tasks(3)
	p := &fakeProcessor{current: ts[0]}
	m := NewMutex(true).(*BlockingMutex)

	m.Lock(p)
	assert.Equal(t, ts[0], m.Owner())
	assert.Empty(t, p.blocked)

	p.current = ts[1]
	m.Lock(p)
	p.current = ts[2]
	m.Lock(p)
	assert.Equal(t, []*task.Task{ts[1], ts[2]}, p.blocked)
	assert.Equal(t, 2, m.WaitCount())

	p.current = ts[0]
	m.Unlock(p)
	assert.Equal(t, ts[1], m.Owner(), "ownership is handed to the first waiter")
	assert.Equal(t, []*task.Task{ts[1]}, p.woken)

	p.current = ts[1]
	m.Unlock(p)
	assert.Equal(t, ts[2], m.Owner())
	p.current = ts[2]
	m.Unlock(p)
	assert.Nil(t, m.Owner())
	assert.Equal(t, []*task.Task{ts[1], ts[2]}, p.woken)
}

func TestSpinMutex(t *testing.T) {
	ts := tasks(2)
	p := &fakeProcessor{current: ts[0]}
	m := NewMutex(false).(*SpinMutex)
	m.Lock(p)
	assert.Equal(t, ts[0], m.Owner())

	p.current = ts[1]
	p.onYield = func() {
		if p.yields == 3 {
			m.Unlock(p)
		}
	}
	m.Lock(p)
	assert.Equal(t, 3, p.yields)
	assert.Equal(t, ts[1], m.Owner())
	assert.Empty(t, p.blocked)
}

func TestSemaphore(t *testing.T) {
	ts := tasks(3)
	p := &fakeProcessor{current: ts[0]}
	s := NewSemaphore(1)

	s.Down(p)
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, p.blocked)

	p.current = ts[1]
	s.Down(p)
	p.current = ts[2]
	s.Down(p)
	assert.Equal(t, -2, s.Count())
	assert.Equal(t, []*task.Task{ts[1], ts[2]}, p.blocked)

	p.current = ts[0]
	s.Up(p)
	s.Up(p)
	assert.Equal(t, []*task.Task{ts[1], ts[2]}, p.woken, "waiters leave in FIFO order")
	s.Up(p)
	assert.Equal(t, 1, s.Count())
	assert.Len(t, p.woken, 2)
}

func TestCondvar(t *testing.T) {
	ts := tasks(3)
	p := &fakeProcessor{current: ts[0]}
	c := NewCondvar()

	c.Signal(p)
	assert.Empty(t, p.woken, "signal without waiters is lost")

	m := NewMutex(true)
	p.current = ts[1]
	m.Lock(p)
	c.Wait(p, m)
	assert.Equal(t, []*task.Task{ts[1]}, p.blocked)
	assert.Equal(t, ts[1], m.Owner(), "fake processor returns immediately so the mutex is reacquired")

	p.current = ts[2]
	c.Park(p)
	assert.Equal(t, 2, c.WaitCount())

	p.current = ts[0]
	c.Signal(p)
	assert.Equal(t, []*task.Task{ts[1]}, p.woken)
	assert.Equal(t, 1, c.WaitCount())
}
