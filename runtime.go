package kernel

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/progress"
	"github.com/viant/kernel/runtime/process"
	"github.com/viant/kernel/service/dao"
	"github.com/viant/kernel/service/event"
	"github.com/viant/kernel/service/memory"
	"github.com/viant/kernel/service/processor"
	"github.com/viant/kernel/service/sys"
)

// Runtime owns the CPU, the syscall layer and the process registry.
type Runtime struct {
	config        *Config
	bootID        string
	cpu           *processor.Service
	sys           *sys.Service
	processDAO    dao.Service[int, process.Process]
	progress      *progress.Progress
	nextPID       atomic.Int64
	taskEvents    *event.Publisher[event.TaskState]
	processEvents *event.Publisher[event.ProcessState]
	rejections    *event.Publisher[event.Rejection]
}

// BootID identifies this kernel instance
func (r *Runtime) BootID() string {
	return r.bootID
}

// Spawn creates a process whose main thread runs entry. A zero priority
// selects the configured default.
func (r *Runtime) Spawn(ctx context.Context, name string, priority uint64, entry sys.Entry) (*process.Process, error) {
	if entry == nil {
		return nil, fmt.Errorf("entry is required")
	}
	if priority == 0 {
		priority = r.config.Scheduler.DefaultPriority
	}
	if priority < task.MinPriority {
		return nil, fmt.Errorf("priority %d below minimum %d", priority, task.MinPriority)
	}
	pid := int(r.nextPID.Add(1) - 1)
	p := process.New(pid, name, memory.New(r.config.Memory.HeapBottom))
	if err := r.processDAO.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to register process %v: %w", pid, err)
	}
	if _, err := r.sys.Spawn(p, name, priority, entry); err != nil {
		return nil, err
	}
	r.progress.Update(progress.Delta{ProcessesSpawned: 1})
	_ = r.processEvents.Publish(ctx, event.NewEvent(processContext(p, event.TypeProcessSpawn), event.ProcessState{State: p.State()}))
	return p, nil
}

// Run drives the CPU until every thread exited, every remaining thread is
// blocked (processor.ErrStalled), or ctx is done.
func (r *Runtime) Run(ctx context.Context) error {
	return r.cpu.Run(ctx)
}

// Process returns the process registered under pid
func (r *Runtime) Process(ctx context.Context, pid int) (*process.Process, error) {
	return r.processDAO.Load(ctx, pid)
}

// Processes lists registered processes, optionally filtered by dao.ParameterState
func (r *Runtime) Processes(ctx context.Context, parameters ...*dao.Parameter) ([]*process.Process, error) {
	return r.processDAO.List(ctx, parameters...)
}

// Progress returns the kernel counters
func (r *Runtime) Progress() progress.Counters {
	return r.progress.Snapshot()
}

func (r *Runtime) onTransition(t *task.Task, from, to task.Status) {
	var delta progress.Delta
	var eventType string
	switch to {
	case task.StatusReady:
		eventType = event.TypeTaskReady
		if from == task.StatusUnInit {
			delta.Spawned = 1
		}
	case task.StatusRunning:
		eventType = event.TypeTaskRunning
		delta.Dispatched = 1
	case task.StatusBlocked:
		eventType = event.TypeTaskBlocked
		delta.Blocked = 1
	case task.StatusExited:
		eventType = event.TypeTaskExited
		delta.Exited = 1
	default:
		return
	}
	r.progress.Update(delta)
	_ = r.taskEvents.Publish(context.Background(), event.NewEvent(taskContext(t, eventType), event.TaskState{Status: to.String()}))
}

func (r *Runtime) onProcessExit(p *process.Process) {
	r.progress.Update(progress.Delta{ProcessesExited: 1})
	_ = r.processEvents.Publish(context.Background(), event.NewEvent(processContext(p, event.TypeProcessExit), event.ProcessState{
		State:    p.State(),
		ExitCode: p.ExitCode,
	}))
}

func (r *Runtime) onReject(t *task.Task, err error) {
	r.progress.Update(progress.Delta{Deadlocks: 1})
	_ = r.rejections.Publish(context.Background(), event.NewEvent(taskContext(t, event.TypeDeadlock), event.Rejection{Reason: err.Error()}))
}
