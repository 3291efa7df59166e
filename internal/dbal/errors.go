package dbal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no row matches the requested primary key.
	ErrNotFound = errors.New("record not found")

	// ErrNotBound is returned when an operation needs a backing record and the entity has none.
	ErrNotBound = errors.New("entity has no bound record")
)

// StorageError wraps a failure reported by the database driver.
// The driver error is kept intact and reachable through errors.Is / errors.As.
type StorageError struct {
	Op    string // select, insert, update, delete, begin, commit
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
