package gateway

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mkamada/scanboard/internal/domain"
)

// DedupFetcher decorates a Fetcher with request deduplication: concurrent
// identical requests are collapsed through singleflight, and successful
// results are served from a bounded TTL cache. Errors are never cached, so a
// user-triggered re-fetch after a failure goes back to the backend.
type DedupFetcher struct {
	inner Fetcher
	group singleflight.Group

	mu         sync.Mutex
	cache      map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// NewDedupFetcher wraps inner with a cache holding at most maxEntries
// results for ttl each. Non-positive arguments fall back to 30 seconds and
// 128 entries.
func NewDedupFetcher(inner Fetcher, ttl time.Duration, maxEntries int) *DedupFetcher {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	return &DedupFetcher{
		inner:      inner,
		cache:      make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// FetchRepositories implements Fetcher.
func (d *DedupFetcher) FetchRepositories(ctx context.Context) ([]domain.Repository, error) {
	v, err := d.fetch(ctx, "repositories", func() (any, error) {
		return d.inner.FetchRepositories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Repository), nil
}

// FetchCustomScans implements Fetcher.
func (d *DedupFetcher) FetchCustomScans(ctx context.Context) ([]domain.CustomScanResult, error) {
	v, err := d.fetch(ctx, "custom-scans", func() (any, error) {
		return d.inner.FetchCustomScans(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.CustomScanResult), nil
}

// FetchSecurityOverview implements Fetcher. The cache key includes the
// window and repository selection, so changing either bypasses stale
// entries.
func (d *DedupFetcher) FetchSecurityOverview(ctx context.Context, window domain.TimeFilter, repoSelector string) (RawSecurityOverview, error) {
	key := "overview|" + string(window) + "|" + repoSelector
	v, err := d.fetch(ctx, key, func() (any, error) {
		return d.inner.FetchSecurityOverview(ctx, window, repoSelector)
	})
	if err != nil {
		return RawSecurityOverview{}, err
	}
	return v.(RawSecurityOverview), nil
}

func (d *DedupFetcher) fetch(ctx context.Context, key string, fn func() (any, error)) (any, error) {
	if v, ok := d.lookup(key); ok {
		return v, nil
	}
	v, err, _ := d.group.Do(key, func() (any, error) {
		// Re-check under singleflight: a concurrent caller may have
		// populated the cache while this call waited.
		if v, ok := d.lookup(key); ok {
			return v, nil
		}
		v, err := fn()
		if err != nil {
			return nil, err
		}
		d.store(key, v)
		return v, nil
	})
	return v, err
}

func (d *DedupFetcher) lookup(key string) (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	entry, ok := d.cache[key]
	if !ok || d.now().After(entry.expiresAt) {
		delete(d.cache, key)
		return nil, false
	}
	return entry.value, true
}

func (d *DedupFetcher) store(key string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cache) >= d.maxEntries {
		d.evictLocked()
	}
	d.cache[key] = cacheEntry{value: value, expiresAt: d.now().Add(d.ttl)}
}

// evictLocked drops the entry closest to expiry to keep the cache bounded.
func (d *DedupFetcher) evictLocked() {
	var victim string
	var earliest time.Time
	for k, e := range d.cache {
		if victim == "" || e.expiresAt.Before(earliest) {
			victim = k
			earliest = e.expiresAt
		}
	}
	if victim != "" {
		delete(d.cache, victim)
	}
}
