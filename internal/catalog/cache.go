package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	records []Record
	expires time.Time
}

// cachedSearcher memoizes search results and spaces out live lookups so a
// batch of detected titles does not hammer the catalog API.
type cachedSearcher struct {
	inner      Searcher
	cache      map[string]cacheEntry
	cacheTTL   time.Duration
	rateLimit  time.Duration
	mu         sync.Mutex
	lastLookup time.Time
}

// NewCachedSearcher wraps a Searcher with a TTL cache and a minimum delay
// between live catalog lookups. Errors are never cached.
func NewCachedSearcher(inner Searcher) Searcher {
	return &cachedSearcher{
		inner:      inner,
		cache:      make(map[string]cacheEntry),
		cacheTTL:   10 * time.Minute,
		rateLimit:  250 * time.Millisecond,
		lastLookup: time.Unix(0, 0),
	}
}

func (s *cachedSearcher) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	key := fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(query)), limit)
	now := time.Now()

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && now.Before(entry.expires) {
		records := entry.records
		s.mu.Unlock()
		return records, nil
	}

	wait := s.rateLimit - now.Sub(s.lastLookup)
	if wait > 0 {
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		s.mu.Lock()
	}
	s.lastLookup = time.Now()
	s.mu.Unlock()

	records, err := s.inner.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{records: records, expires: time.Now().Add(s.cacheTTL)}
	s.mu.Unlock()
	return records, nil
}
