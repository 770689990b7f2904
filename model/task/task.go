package task

import "fmt"

const (
	// MaxSyscallNum bounds the syscall histogram.
	MaxSyscallNum = 500
	// MinPriority is the lowest priority accepted by the scheduler.
	MinPriority = 2
	// DefaultPriority is assigned to tasks spawned without an explicit priority.
	DefaultPriority = 16
)

// Task represents a schedulable thread of a process
type Task struct {
	PID    int    `json:"pid"`
	TID    int    `json:"tid"`
	Name   string `json:"name,omitempty"`
	Status Status `json:"status"`
	// Context is the saved execution context, owned by the processor that runs the task.
	Context      any                   `json:"-"`
	SyscallTimes [MaxSyscallNum]uint32 `json:"-"`
	// Time is the elapsed milliseconds since the first dispatch, as of the last UpdateTime.
	Time      uint64 `json:"time"`
	StartTime uint64 `json:"startTime"`
	started   bool

	Stride   uint64 `json:"stride"`
	Priority uint64 `json:"priority"`

	Demand Vectors `json:"-"`
	Allot  Vectors `json:"-"`

	ExitCode int `json:"exitCode"`
}

// Info is the task_info snapshot returned to user programs
type Info struct {
	Status       Status
	SyscallTimes [MaxSyscallNum]uint32
	Time         uint64
}

// New creates an uninitialised task with stride 0.
func New(pid, tid int, priority uint64) *Task {
	if priority < MinPriority {
		priority = DefaultPriority
	}
	return &Task{PID: pid, TID: tid, Priority: priority, Status: StatusUnInit}
}

// UpdateTime records the start timestamp on the first call; later calls
// set Time to the elapsed milliseconds since then.
func (t *Task) UpdateTime(nowMs uint64) {
	if !t.started {
		t.started = true
		t.StartTime = nowMs
		return
	}
	if nowMs < t.StartTime {
		return
	}
	t.Time = nowMs - t.StartTime
}

// CountSyscall increments the histogram entry of id; ids out of range are ignored.
func (t *Task) CountSyscall(id int) {
	if id < 0 || id >= MaxSyscallNum {
		return
	}
	t.SyscallTimes[id]++
}

// Info returns a task_info snapshot.
func (t *Task) Info() Info {
	return Info{Status: t.Status, SyscallTimes: t.SyscallTimes, Time: t.Time}
}

// SetPriority validates and applies a new priority.
func (t *Task) SetPriority(priority uint64) error {
	if priority < MinPriority {
		return fmt.Errorf("priority %d below minimum %d", priority, MinPriority)
	}
	t.Priority = priority
	return nil
}

func (t *Task) String() string {
	if t.Name != "" {
		return fmt.Sprintf("%d/%d(%s)", t.PID, t.TID, t.Name)
	}
	return fmt.Sprintf("%d/%d", t.PID, t.TID)
}
