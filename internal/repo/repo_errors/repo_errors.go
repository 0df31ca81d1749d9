package repo_errors

import "errors"

var (
	ErrNotFound = errors.New("entity not found")

	// ErrConflict surfaces a unique-constraint violation from a concurrent
	// write (duplicate thread row or version-number collision). Callers may
	// re-read state and retry the whole operation once.
	ErrConflict = errors.New("conflicting concurrent write")
)
