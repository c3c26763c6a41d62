package metadata

import (
	"context"
	"log/slog"

	"github.com/mrlokans/library/internal/metrics"
)

// URLCache stores resolved cover URLs keyed by normalized ISBN.
type URLCache interface {
	Get(isbn string) (url string, ok bool, err error)
	Set(isbn, url string) error
}

// CachedLookup consults cache before delegating to next. Only successful
// lookups are cached so a transient provider failure is retried next time.
// Cache errors are logged and otherwise ignored.
type CachedLookup struct {
	next    Lookup
	cache   URLCache
	metrics *metrics.Metrics
}

func NewCachedLookup(next Lookup, cache URLCache, m *metrics.Metrics) *CachedLookup {
	return &CachedLookup{next: next, cache: cache, metrics: m}
}

func (c *CachedLookup) LookupCover(ctx context.Context, isbn string) (string, error) {
	key := normalizeISBN(isbn)
	if key == "" {
		return c.next.LookupCover(ctx, isbn)
	}

	cover, ok, err := c.cache.Get(key)
	if err != nil {
		slog.Warn("Cover cache read failed", "isbn", key, "error", err)
	} else if ok {
		c.metrics.ObserveCoverLookup(metrics.LookupCached)
		return cover, nil
	}

	cover, err = c.next.LookupCover(ctx, isbn)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(key, cover); err != nil {
		slog.Warn("Cover cache write failed", "isbn", key, "error", err)
	}
	return cover, nil
}
