package processor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/viant/kernel/internal/clock"
	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/service/scheduler"
	"github.com/viant/kernel/service/timer"
)

var (
	// ErrStalled is returned by Run when live tasks remain but none is ready and none sleeps.
	ErrStalled = errors.New("processor: all tasks blocked")
	// ErrRunning is returned when Run is called more than once.
	ErrRunning = errors.New("processor: already running")
)

// Listener observes task status transitions.
type Listener func(t *task.Task, from, to task.Status)

type thread struct {
	permit chan struct{}
	body   func()
}

// Service is a single CPU. A Service runs once; Run closes it on return.
type Service struct {
	config    scheduler.Config
	timer     timer.Service
	listeners []Listener

	mu        sync.Mutex
	scheduler *scheduler.Manager
	current   *task.Task
	live      int
	sleeping  int
	running   bool

	notify   chan struct{}
	switched chan struct{}
	done     chan struct{}
}

// New creates a processor
func New(options ...Option) (*Service, error) {
	s := &Service{
		config:   scheduler.DefaultConfig(),
		notify:   make(chan struct{}, 1),
		switched: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.config.BigStride == 0 {
		return nil, fmt.Errorf("bigStride is required")
	}
	if s.timer == nil {
		s.timer = timer.New()
	}
	s.scheduler = scheduler.New(s.config)
	return s, nil
}

// Spawn admits t to the ready queue; body runs on the CPU once t is dispatched.
func (s *Service) Spawn(t *task.Task, body func()) error {
	if t.Context != nil {
		return fmt.Errorf("task %v already spawned", t)
	}
	th := &thread{permit: make(chan struct{}, 1), body: body}
	t.Context = th
	s.mu.Lock()
	s.live++
	s.scheduler.Add(t)
	s.mu.Unlock()
	s.signal()
	s.emit(t, task.StatusUnInit, task.StatusReady)
	go s.start(t, th)
	return nil
}

// Current returns the task holding the CPU.
func (s *Service) Current() *task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Yield re-admits the current task and runs the next one.
func (s *Service) Yield() {
	t := s.Current()
	s.mu.Lock()
	s.scheduler.Add(t)
	s.mu.Unlock()
	s.emit(t, task.StatusRunning, task.StatusReady)
	s.switchOut(t)
}

// Block parks the current task until Wake.
func (s *Service) Block() {
	t := s.Current()
	s.mu.Lock()
	t.Status = task.StatusBlocked
	s.mu.Unlock()
	s.emit(t, task.StatusRunning, task.StatusBlocked)
	s.switchOut(t)
}

// Sleep parks the current task for d.
func (s *Service) Sleep(d time.Duration) {
	t := s.Current()
	s.mu.Lock()
	t.Status = task.StatusBlocked
	s.sleeping++
	s.mu.Unlock()
	s.emit(t, task.StatusRunning, task.StatusBlocked)
	s.timer.After(d, func() {
		s.mu.Lock()
		s.sleeping--
		woken := s.wakeLocked(t)
		s.mu.Unlock()
		s.signal()
		if woken {
			s.emit(t, task.StatusBlocked, task.StatusReady)
		}
	})
	s.switchOut(t)
}

// Wake re-admits a blocked task; other tasks are left untouched.
func (s *Service) Wake(t *task.Task) {
	s.mu.Lock()
	woken := s.wakeLocked(t)
	s.mu.Unlock()
	if woken {
		s.signal()
		s.emit(t, task.StatusBlocked, task.StatusReady)
	}
}

// Exit terminates the current task; it does not return.
func (s *Service) Exit() {
	runtime.Goexit()
}

// Pass returns the stride increment of priority.
func (s *Service) Pass(priority uint64) uint64 {
	return s.scheduler.Pass(priority)
}

// Run dispatches tasks until every spawned task exited, all remaining tasks
// are blocked, or ctx is done.
func (s *Service) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrRunning
	}
	s.running = true
	s.mu.Unlock()
	defer close(s.done)

	for {
		s.mu.Lock()
		next := s.scheduler.Fetch()
		if next == nil {
			live, sleeping := s.live, s.sleeping
			s.mu.Unlock()
			if live == 0 {
				return nil
			}
			if sleeping == 0 {
				log.Printf("processor: %d task(s) blocked with nothing ready", live)
				return fmt.Errorf("%d live task(s): %w", live, ErrStalled)
			}
			select {
			case <-s.notify:
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		next.Status = task.StatusRunning
		s.current = next
		s.mu.Unlock()

		next.UpdateTime(clock.Millis())
		s.emit(next, task.StatusReady, task.StatusRunning)
		next.Context.(*thread).permit <- struct{}{}
		select {
		case <-s.switched:
		case <-ctx.Done():
			return ctx.Err()
		}
		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
	}
}

func (s *Service) start(t *task.Task, th *thread) {
	if !s.await(th) {
		return
	}
	defer s.finish(t)
	th.body()
}

func (s *Service) finish(t *task.Task) {
	if r := recover(); r != nil {
		log.Printf("processor: task %v panicked: %v", t, r)
		if t.ExitCode == 0 {
			t.ExitCode = -1
		}
	}
	s.mu.Lock()
	t.Status = task.StatusExited
	s.live--
	s.mu.Unlock()
	s.emit(t, task.StatusRunning, task.StatusExited)
	select {
	case s.switched <- struct{}{}:
	case <-s.done:
	}
}

func (s *Service) switchOut(t *task.Task) {
	th := t.Context.(*thread)
	select {
	case s.switched <- struct{}{}:
	case <-s.done:
		runtime.Goexit()
	}
	if !s.await(th) {
		runtime.Goexit()
	}
}

func (s *Service) await(th *thread) bool {
	select {
	case <-th.permit:
		return true
	case <-s.done:
		return false
	}
}

func (s *Service) wakeLocked(t *task.Task) bool {
	if t.Status != task.StatusBlocked {
		return false
	}
	s.scheduler.Add(t)
	return true
}

func (s *Service) signal() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Service) emit(t *task.Task, from, to task.Status) {
	for _, listener := range s.listeners {
		listener(t, from, to)
	}
}
