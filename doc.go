// Package kernel provides a hosted teaching-kernel core: a single CPU
// driven by a stride scheduler, user threads grouped into processes, and
// mutex, semaphore and condition variable primitives guarded by online
// deadlock detection.
//
// User programs are Go functions receiving a *sys.Thread; they talk to the
// kernel exclusively through its syscall methods:
//
//	srv, _ := kernel.New()
//	rt := srv.Runtime()
//	_, _ = rt.Spawn(ctx, "init", 0, func(th *sys.Thread) {
//		m := th.MutexCreate(true)
//		th.MutexLock(m)
//		th.MutexUnlock(m)
//	})
//	err := rt.Run(ctx)
//
// Only one user thread executes at a time; control changes hands when the
// running thread yields, blocks, sleeps or exits.
package kernel
