package primitive

import "github.com/viant/kernel/model/task"

// Processor is the slice of the CPU a primitive needs to park and wake tasks.
type Processor interface {
	// Current returns the task holding the CPU.
	Current() *task.Task
	// Yield re-admits the current task and runs the next one.
	Yield()
	// Block parks the current task until another task wakes it.
	Block()
	// Wake re-admits a parked task to the ready queue.
	Wake(t *task.Task)
}
