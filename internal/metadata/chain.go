package metadata

import (
	"context"
	"errors"
)

// Lookup resolves an ISBN to a cover image URL.
type Lookup interface {
	LookupCover(ctx context.Context, isbn string) (string, error)
}

// Chain tries each lookup in order and returns the first cover found.
type Chain []Lookup

func (c Chain) LookupCover(ctx context.Context, isbn string) (string, error) {
	if len(c) == 0 {
		return "", ErrNoCover
	}

	var errs []error
	for _, lookup := range c {
		cover, err := lookup.LookupCover(ctx, isbn)
		if err == nil && cover != "" {
			return cover, nil
		}
		if err == nil {
			err = ErrNoCover
		}
		errs = append(errs, err)

		// A cancelled lookup would fail every remaining provider too.
		if ctx.Err() != nil {
			break
		}
	}
	return "", errors.Join(errs...)
}
