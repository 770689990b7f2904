package task

// Status represents the lifecycle state of a task
type Status int

const (
	StatusUnInit Status = iota
	StatusReady
	StatusRunning
	// StatusBlocked marks a task parked on a primitive wait queue or a timer.
	StatusBlocked
	StatusExited
)

func (s Status) String() string {
	switch s {
	case StatusUnInit:
		return "uninit"
	case StatusReady:
		return "ready"
	case StatusRunning:
		return "running"
	case StatusBlocked:
		return "blocked"
	case StatusExited:
		return "exited"
	}
	return "unknown"
}

// IsAlive returns true until the task exits.
func (s Status) IsAlive() bool {
	return s != StatusExited
}
