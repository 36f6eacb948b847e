package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInUse is returned when a delete is refused because other rows
	// still reference the target. Deletes restrict rather than cascade.
	ErrInUse = errors.New("record is referenced by existing transactions")
)
