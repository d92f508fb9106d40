package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a unique constraint is violated,
	// e.g. registering an email twice or inserting a ticket number
	// already taken for its (location, category) pair.
	ErrDuplicate = errors.New("duplicate entity")
)
