package metadata

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidISBN = errors.New("invalid ISBN")
	ErrNoResults   = errors.New("no results")
	ErrNoCover     = errors.New("no cover image")
)

// StatusError reports a non-200 response from a cover provider.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status: %d", e.Provider, e.StatusCode)
}
