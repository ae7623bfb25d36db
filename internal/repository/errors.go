package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a conditional insert lost to an existing record.
	ErrDuplicate = errors.New("repository: duplicate key")
)
