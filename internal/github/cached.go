package github

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"portfolio/internal/cache"
)

const cacheKey = "github:contributions"

// CachedFetcher serves the calendar from a cache and falls through to next on a miss.
// Cache errors are logged and never fail the request.
type CachedFetcher struct {
	next   Fetcher
	store  cache.Store
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedFetcher(next Fetcher, store cache.Store, ttl time.Duration, logger *slog.Logger) *CachedFetcher {
	return &CachedFetcher{next: next, store: store, ttl: ttl, logger: logger}
}

func (f *CachedFetcher) Fetch(ctx context.Context) (*Calendar, error) {
	raw, err := f.store.Get(ctx, cacheKey)
	switch {
	case err == nil:
		var cal Calendar
		if jerr := json.Unmarshal(raw, &cal); jerr == nil {
			return &cal, nil
		}
		f.logger.Warn("Discarding unreadable cached calendar")
	case !errors.Is(err, cache.ErrMiss):
		f.logger.Warn("Calendar cache read failed", "error", err)
	}

	cal, err := f.next.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(cal); err == nil {
		if err := f.store.Set(ctx, cacheKey, raw, f.ttl); err != nil {
			f.logger.Warn("Calendar cache write failed", "error", err)
		}
	}
	return cal, nil
}
