package ledger

import "errors"

var (
	// ErrDeadlock is returned when granting a request would leave some task
	// of the process unable to finish.
	ErrDeadlock = errors.New("ledger: request would deadlock")

	// ErrInvalidID is returned for ids that do not name a live slot.
	ErrInvalidID = errors.New("ledger: invalid resource id")
)
