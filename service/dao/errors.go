package dao

import "errors"

var (
	// ErrNotFound is returned when no record is stored under the key.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID is returned for keys the store cannot hold.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when saving a nil record.
	ErrNilEntity = errors.New("dao: nil entity")
)
