package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) by a Store when a record does not exist.
var ErrNotFound = errors.New("not found")

// StorageError reports that the store could not complete an operation.
// It is surfaced to callers and never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is, or wraps, a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
