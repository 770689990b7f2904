package progress

import (
	"sync"
	"time"
)

// Delta represents an incremental counter change.
type Delta struct {
	Spawned          int
	Exited           int
	Dispatched       int
	Blocked          int
	Deadlocks        int
	ProcessesSpawned int
	ProcessesExited  int
}

// Counters is a point-in-time view of a tracker.
type Counters struct {
	BootID    string
	StartedAt time.Time

	SpawnedTasks     int
	ExitedTasks      int
	Dispatches       int
	Blocks           int
	Deadlocks        int
	SpawnedProcesses int
	ExitedProcesses  int
}

// LiveTasks returns the number of spawned tasks that have not exited.
func (c Counters) LiveTasks() int {
	return c.SpawnedTasks - c.ExitedTasks
}

// Progress keeps kernel counters. It is safe for concurrent use.
type Progress struct {
	mu       sync.Mutex
	counters Counters
	onChange func(Counters)
}

// New creates a tracker for the kernel instance bootID.
func New(bootID string) *Progress {
	return &Progress{counters: Counters{BootID: bootID, StartedAt: time.Now()}}
}

// Update applies d. The onChange callback, if any, receives the updated
// counters outside the lock.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mu.Lock()
	c := &p.counters
	c.SpawnedTasks += d.Spawned
	c.ExitedTasks += d.Exited
	c.Dispatches += d.Dispatched
	c.Blocks += d.Blocked
	c.Deadlocks += d.Deadlocks
	c.SpawnedProcesses += d.ProcessesSpawned
	c.ExitedProcesses += d.ProcessesExited
	snapshot := p.counters
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns the current counters.
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counters
}

// OnChange registers a callback invoked after every Update; nil disables it.
func (p *Progress) OnChange(cb func(Counters)) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.onChange = cb
	p.mu.Unlock()
}
