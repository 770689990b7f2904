package sys

import (
	"errors"
	"strconv"
	"time"

	"github.com/viant/kernel/internal/clock"
	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/runtime/process"
	"github.com/viant/kernel/service/ledger"
	"github.com/viant/kernel/service/memory"
	"github.com/viant/kernel/tracing"
)

// FdStdout is the only writable descriptor.
const FdStdout = 1

// Thread is the syscall handle of one running task.
type Thread struct {
	service *Service
	process *process.Process
	task    *task.Task
}

// Task returns the underlying task record.
func (t *Thread) Task() *task.Task { return t.task }

// Process returns the owning process.
func (t *Thread) Process() *process.Process { return t.process }

func (t *Thread) enter(id int) *tracing.Span {
	t.task.CountSyscall(id)
	if !t.service.config.Tracing {
		return nil
	}
	_, span := tracing.StartSpan(t.service.ctx, Name(id), "INTERNAL")
	return span.WithInt("pid", t.task.PID).WithInt("tid", t.task.TID)
}

func (t *Thread) leave(span *tracing.Span, ret int) int {
	if span == nil {
		return ret
	}
	var err error
	if ret == Deadlock {
		err = ledger.ErrDeadlock
	} else if ret < 0 {
		err = errors.New("returned " + strconv.Itoa(ret))
	}
	tracing.EndSpan(span.WithInt("ret", ret), err)
	return ret
}

// Write writes buf to fd; only stdout is writable.
func (t *Thread) Write(fd int, buf []byte) int {
	span := t.enter(SysWrite)
	if fd != FdStdout {
		return t.leave(span, Failed)
	}
	n, err := t.service.stdout.Write(buf)
	if err != nil {
		return t.leave(span, Failed)
	}
	return t.leave(span, n)
}

// Exit terminates the calling thread with code; it does not return.
func (t *Thread) Exit(code int) {
	span := t.enter(SysExit)
	t.task.ExitCode = code
	t.leave(span, 0)
	t.service.cpu.Exit()
}

// Sleep parks the calling thread for ms milliseconds.
func (t *Thread) Sleep(ms int) int {
	span := t.enter(SysSleep)
	t.service.cpu.Sleep(time.Duration(ms) * time.Millisecond)
	return t.leave(span, 0)
}

// Yield gives up the CPU.
func (t *Thread) Yield() int {
	span := t.enter(SysYield)
	t.service.cpu.Yield()
	return t.leave(span, 0)
}

// SetPriority sets the scheduling priority; values below 2 are rejected.
func (t *Thread) SetPriority(priority int) int {
	span := t.enter(SysSetPriority)
	if priority < task.MinPriority {
		return t.leave(span, Failed)
	}
	if err := t.task.SetPriority(uint64(priority)); err != nil {
		return t.leave(span, Failed)
	}
	return t.leave(span, priority)
}

// GetTime fills tv with the time since boot.
func (t *Thread) GetTime(tv *TimeVal) int {
	span := t.enter(SysGetTime)
	if tv == nil {
		return t.leave(span, Failed)
	}
	freq := t.service.config.ClockFrequency
	ticks := clock.Ticks(freq)
	tv.Sec = ticks / freq
	tv.Usec = (ticks % freq) * 1_000_000 / freq
	return t.leave(span, 0)
}

// GetPid returns the process id.
func (t *Thread) GetPid() int {
	span := t.enter(SysGetPid)
	return t.leave(span, t.task.PID)
}

// GetTid returns the thread id.
func (t *Thread) GetTid() int {
	span := t.enter(SysGetTid)
	return t.leave(span, t.task.TID)
}

// TaskInfo fills info with the caller's status, syscall histogram and run time.
func (t *Thread) TaskInfo(info *task.Info) int {
	span := t.enter(SysTaskInfo)
	if info == nil {
		return t.leave(span, Failed)
	}
	t.task.UpdateTime(clock.Millis())
	*info = t.task.Info()
	return t.leave(span, 0)
}

// Sbrk moves the program break by delta and returns the old break.
func (t *Thread) Sbrk(delta int) int {
	span := t.enter(SysSbrk)
	old, err := t.process.Space.Brk(int64(delta))
	if err != nil {
		return t.leave(span, Failed)
	}
	return t.leave(span, int(old))
}

// Mmap maps [start, start+length) with prot, a non-empty subset of read, write and exec.
func (t *Thread) Mmap(start, length, prot uint64) int {
	span := t.enter(SysMmap)
	if start%memory.PageSize != 0 || prot>>3 != 0 || prot == 0 {
		return t.leave(span, Failed)
	}
	if err := t.process.Space.Map(start, length, memory.Perm(prot)); err != nil {
		return t.leave(span, Failed)
	}
	return t.leave(span, 0)
}

// Munmap unmaps [start, start+length).
func (t *Thread) Munmap(start, length uint64) int {
	span := t.enter(SysMunmap)
	if err := t.process.Space.Unmap(start, length); err != nil {
		return t.leave(span, Failed)
	}
	return t.leave(span, 0)
}

// ThreadCreate starts a new thread of the calling process and returns its tid.
func (t *Thread) ThreadCreate(entry Entry, priority int) int {
	span := t.enter(SysThreadCreate)
	if entry == nil {
		return t.leave(span, Failed)
	}
	if priority < task.MinPriority {
		priority = task.DefaultPriority
	}
	created, err := t.service.Spawn(t.process, t.process.Name, uint64(priority), entry)
	if err != nil {
		return t.leave(span, Failed)
	}
	return t.leave(span, created.task.TID)
}

// WaitTid reaps an exited thread and returns its exit code, -2 while it
// runs, or -1 for the caller itself and unknown tids.
func (t *Thread) WaitTid(tid int) int {
	span := t.enter(SysWaitTid)
	if tid == t.task.TID {
		return t.leave(span, Failed)
	}
	code, err := t.process.Reap(tid)
	switch {
	case errors.Is(err, process.ErrRunning):
		return t.leave(span, StillRunning)
	case err != nil:
		return t.leave(span, Failed)
	}
	return t.leave(span, code)
}
