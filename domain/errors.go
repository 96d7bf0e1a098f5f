package domain

import "errors"

var (
	// ErrEmptyTitle is returned when a task or subtask title is blank.
	ErrEmptyTitle = errors.New("title must not be empty")
	// ErrEmptyColumnTitle is returned when a new column has a blank title.
	ErrEmptyColumnTitle = errors.New("column title must not be empty")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidSort      = errors.New("invalid sort option")
)
