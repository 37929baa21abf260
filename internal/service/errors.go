package service

import "errors"

var (
	// ErrAlreadyAssigned indicates the user is already assigned to the task.
	// Repeat assignment is a no-op, not a duplicate row.
	ErrAlreadyAssigned = errors.New("user already assigned to task")

	// ErrNotCreator indicates the acting user did not create the record and
	// may not delete it.
	ErrNotCreator = errors.New("only the creator can delete this")
)
