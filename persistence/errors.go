package persistence

import (
	"errors"
	"fmt"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no content is stored under a key.
	ErrNotFound = errors.New("persistence: content not found")

	// ErrStorageUnavailable is matched by every failure of the underlying
	// database: the file could not be opened, migrated, read or written.
	ErrStorageUnavailable = errors.New("persistence: storage unavailable")
)

// StorageError reports which store operation failed and why.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes every StorageError match ErrStorageUnavailable.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
