package source

import (
	"context"
	"sync"
	"time"

	"github.com/eventvol/clashwatch/internal/common"
	"github.com/eventvol/clashwatch/internal/model"
)

// DefaultTTL is the staleness window before a lazy read re-fetches.
const DefaultTTL = 5 * time.Minute

// SnapshotStore persists fetched tables so the last good table survives a
// restart. Implemented by the storage package.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, fetchedAt time.Time, records []model.Record) (string, error)
	LatestRecords(ctx context.Context) ([]model.Record, time.Time, error)
}

// Cache is the time-boxed record cache in front of a Fetcher. Readers always
// see either the previous fully-formed table or the new one; replacement is a
// single pointer swap under the lock, never in-place mutation. Returned
// slices are shared and must be treated as read-only.
type Cache struct {
	fetchedAt time.Time
	fetcher   Fetcher
	store     SnapshotStore
	stopCh    chan struct{}
	records   []model.Record
	ttl       time.Duration
	mu        sync.RWMutex
	stopOnce  sync.Once
}

// NewCache creates a record cache. store may be nil to disable snapshot
// persistence and cold-start fallback.
func NewCache(fetcher Fetcher, ttl time.Duration, store SnapshotStore) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}
}

// Records returns the cached table, re-fetching when stale. A failed re-fetch
// never discards a previously good table: the stale table is served and the
// failure only logged. Only a cold cache (and no usable snapshot) surfaces
// the error to the caller.
func (c *Cache) Records(ctx context.Context) ([]model.Record, error) {
	c.mu.RLock()
	records, fetchedAt := c.records, c.fetchedAt
	c.mu.RUnlock()

	if records != nil && time.Since(fetchedAt) <= c.ttl {
		return records, nil
	}

	if err := c.Refresh(ctx); err != nil {
		if records != nil {
			common.LogError(err, "Record refresh failed, serving stale table", common.Fields{
				"fetched_at": fetchedAt,
				"rows":       len(records),
			})
			return records, nil
		}
		if fallback, at, storeErr := c.loadSnapshot(ctx); storeErr == nil {
			common.LogError(err, "Record fetch failed, serving persisted snapshot", common.Fields{
				"fetched_at": at,
				"rows":       len(fallback),
			})
			return fallback, nil
		}
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records, nil
}

// Refresh force-fetches the table regardless of staleness. On failure the
// previous table is kept and the error is returned to the caller; this is
// the operational refresh contract.
func (c *Cache) Refresh(ctx context.Context) error {
	records, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	now := time.Now()

	c.mu.Lock()
	c.records = records
	c.fetchedAt = now
	c.mu.Unlock()

	common.LogInfo("Record table refreshed", common.Fields{"rows": len(records)})

	if c.store != nil {
		if _, err := c.store.SaveSnapshot(ctx, now, records); err != nil {
			// Persistence is best-effort; the in-memory table is already live.
			common.LogError(err, "Failed to persist record snapshot", nil)
		}
	}

	return nil
}

// FetchedAt returns when the current table was fetched.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Start launches the background refresh loop. Close stops it.
func (c *Cache) Start(interval time.Duration) {
	if interval <= 0 {
		interval = c.ttl
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-c.stopCh:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				if err := c.Refresh(ctx); err != nil {
					common.LogError(err, "Background record refresh failed", nil)
				}
				cancel()
			}
		}
	}()
}

// Close stops the background refresh loop.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *Cache) loadSnapshot(ctx context.Context) ([]model.Record, time.Time, error) {
	if c.store == nil {
		return nil, time.Time{}, common.ErrNoSnapshots
	}
	records, at, err := c.store.LatestRecords(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}

	c.mu.Lock()
	c.records = records
	c.fetchedAt = at
	c.mu.Unlock()

	return records, at, nil
}
