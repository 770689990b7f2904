package event

import "time"

// Event types
const (
	TypeTaskReady    = "task.ready"
	TypeTaskRunning  = "task.running"
	TypeTaskBlocked  = "task.blocked"
	TypeTaskExited   = "task.exited"
	TypeDeadlock     = "ledger.deadlock"
	TypeProcessExit  = "process.exited"
	TypeProcessSpawn = "process.spawned"
)

// Context identifies the origin of an event
type Context struct {
	PID       int    `json:"pid"`
	TID       int    `json:"tid"`
	Name      string `json:"name,omitempty"`
	EventType string `json:"eventType"`
}

type Event[T any] struct {
	Seq       uint64                 `json:"seq"`
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}

func (e *Event[T]) untyped() *Event[any] {
	return &Event[any]{
		Seq:       e.Seq,
		Context:   e.Context,
		CreatedAt: e.CreatedAt,
		Metadata:  e.Metadata,
		Data:      e.Data,
	}
}

// TaskState is the payload of task events
type TaskState struct {
	Status string `json:"status"`
}

// ProcessState is the payload of process events
type ProcessState struct {
	State    string `json:"state"`
	ExitCode int    `json:"exitCode"`
}

// Rejection is the payload of deadlock events
type Rejection struct {
	Reason string `json:"reason"`
}
