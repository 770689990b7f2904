package sys

import "strconv"

// Syscall numbers
const (
	SysWrite                = 64
	SysExit                 = 93
	SysSleep                = 101
	SysYield                = 124
	SysSetPriority          = 140
	SysGetTime              = 169
	SysGetPid               = 172
	SysSbrk                 = 214
	SysMunmap               = 215
	SysMmap                 = 222
	SysTaskInfo             = 410
	SysThreadCreate         = 460
	SysWaitTid              = 462
	SysMutexCreate          = 463
	SysMutexLock            = 464
	SysMutexUnlock          = 466
	SysSemaphoreCreate      = 467
	SysSemaphoreUp          = 468
	SysEnableDeadlockDetect = 469
	SysSemaphoreDown        = 470
	SysCondvarCreate        = 471
	SysCondvarSignal        = 472
	SysCondvarWait          = 473
	SysGetTid               = 1000
)

const (
	// Failed is returned by rejected calls.
	Failed = -1
	// Deadlock is returned when an acquisition would deadlock the process.
	Deadlock = -0xDEAD
	// StillRunning is returned by WaitTid for a thread that has not exited.
	StillRunning = -2
)

// DefaultClockFrequency is the tick rate reported through GetTime.
const DefaultClockFrequency = 12_500_000

var names = map[int]string{
	SysWrite:                "write",
	SysExit:                 "exit",
	SysSleep:                "sleep",
	SysYield:                "yield",
	SysSetPriority:          "set_priority",
	SysGetTime:              "get_time",
	SysGetPid:               "getpid",
	SysSbrk:                 "sbrk",
	SysMunmap:               "munmap",
	SysMmap:                 "mmap",
	SysTaskInfo:             "task_info",
	SysThreadCreate:         "thread_create",
	SysWaitTid:              "waittid",
	SysMutexCreate:          "mutex_create",
	SysMutexLock:            "mutex_lock",
	SysMutexUnlock:          "mutex_unlock",
	SysSemaphoreCreate:      "semaphore_create",
	SysSemaphoreUp:          "semaphore_up",
	SysEnableDeadlockDetect: "enable_deadlock_detect",
	SysSemaphoreDown:        "semaphore_down",
	SysCondvarCreate:        "condvar_create",
	SysCondvarSignal:        "condvar_signal",
	SysCondvarWait:          "condvar_wait",
	SysGetTid:               "gettid",
}

// Name returns the syscall name of id.
func Name(id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "syscall_" + strconv.Itoa(id)
}

// TimeVal is the get_time result.
type TimeVal struct {
	Sec  uint64
	Usec uint64
}
