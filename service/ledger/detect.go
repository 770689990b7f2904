package ledger

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/viant/kernel/model/task"
)

// Safe reports whether every task can finish: starting from the available
// counts, it repeatedly lets any task whose whole demand fits run to
// completion and return its allotment, until a pass makes no progress.
// Mutexes and semaphores share one resource vector; condvars hold nothing.
func (l *Ledger) Safe(tasks []*task.Task) bool {
	var work task.Vectors
	for _, kind := range task.Kinds() {
		work[kind] = l.available[kind].Clone()
	}
	finished := bitset.New(uint(len(tasks)))
	for progressed := true; progressed; {
		progressed = false
		for i, candidate := range tasks {
			if finished.Test(uint(i)) || !fits(&candidate.Demand, &work) {
				continue
			}
			finished.Set(uint(i))
			for _, kind := range task.Kinds() {
				for id, held := range candidate.Allot[kind] {
					work.Add(kind, id, held)
				}
			}
			progressed = true
		}
	}
	return finished.Count() == uint(len(tasks))
}

func fits(demand, work *task.Vectors) bool {
	for _, kind := range task.Kinds() {
		for id, wanted := range demand[kind] {
			if wanted > work.At(kind, id) {
				return false
			}
		}
	}
	return true
}
