package sys

// Dispatch runs a syscall given by number with register-style arguments.
// Calls that take buffers or program entries (write, get_time, task_info,
// thread_create) are reached through their typed methods; Dispatch counts
// and rejects them, like any unknown number. Calls the admission policy
// refuses fail with -1.
func (t *Thread) Dispatch(id int, args ...uint64) int {
	if !t.service.policy.Admit(t.service.ctx, Name(id), args) {
		return t.leave(t.enter(id), Failed)
	}
	arg := func(i int) uint64 {
		if i < len(args) {
			return args[i]
		}
		return 0
	}
	switch id {
	case SysExit:
		t.Exit(int(int32(arg(0))))
	case SysSleep:
		return t.Sleep(int(arg(0)))
	case SysYield:
		return t.Yield()
	case SysSetPriority:
		return t.SetPriority(int(int64(arg(0))))
	case SysGetPid:
		return t.GetPid()
	case SysGetTid:
		return t.GetTid()
	case SysSbrk:
		return t.Sbrk(int(int32(arg(0))))
	case SysMmap:
		return t.Mmap(arg(0), arg(1), arg(2))
	case SysMunmap:
		return t.Munmap(arg(0), arg(1))
	case SysWaitTid:
		return t.WaitTid(int(arg(0)))
	case SysMutexCreate:
		return t.MutexCreate(arg(0) != 0)
	case SysMutexLock:
		return t.MutexLock(int(arg(0)))
	case SysMutexUnlock:
		return t.MutexUnlock(int(arg(0)))
	case SysSemaphoreCreate:
		return t.SemaphoreCreate(int(arg(0)))
	case SysSemaphoreUp:
		return t.SemaphoreUp(int(arg(0)))
	case SysSemaphoreDown:
		return t.SemaphoreDown(int(arg(0)))
	case SysCondvarCreate:
		return t.CondvarCreate()
	case SysCondvarSignal:
		return t.CondvarSignal(int(arg(0)))
	case SysCondvarWait:
		return t.CondvarWait(int(arg(0)), int(arg(1)))
	case SysEnableDeadlockDetect:
		return t.EnableDeadlockDetect(int(arg(0)))
	}
	t.leave(t.enter(id), Failed)
	return Failed
}
