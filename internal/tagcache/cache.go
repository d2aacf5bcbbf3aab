// Package tagcache provides a read-through, per-category cache over the tag
// store with lazy TTL expiry.
package tagcache

import (
	"context"
	"sync"
	"time"

	"github.com/matcatalog/tag-matching/internal/tags"
)

// DefaultTTL is how long a cached category tag list stays valid.
const DefaultTTL = 5 * time.Minute

type entry struct {
	tags      []tags.Tag
	fetchedAt time.Time
}

// Cache caches each category's tag list for a TTL. Staleness is checked on
// read; there is no background sweep. A failed refresh leaves the previous
// entry in place so the next read retries.
type Cache struct {
	store tags.Store
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]entry

	now func() time.Time
}

// New creates a cache over the given store. A non-positive ttl falls back to
// DefaultTTL.
func New(store tags.Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:   store,
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// GetTags returns the category's tag list, fetching from the store when the
// cached entry is absent or expired. Fetch errors propagate to the caller
// without evicting whatever entry was already present.
func (c *Cache) GetTags(ctx context.Context, category string) ([]tags.Tag, error) {
	c.mu.RLock()
	e, ok := c.entries[category]
	c.mu.RUnlock()

	if ok && c.now().Sub(e.fetchedAt) < c.ttl {
		return e.tags, nil
	}

	// Two concurrent misses may both fetch; refreshes are idempotent so the
	// last write wins with the same data.
	fetched, err := c.store.ListTags(ctx, category)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[category] = entry{tags: fetched, fetchedAt: c.now()}
	c.mu.Unlock()

	return fetched, nil
}

// Clear drops every cached category.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Stats describes the cache contents for observability.
type Stats struct {
	Categories  int       `json:"categories"`
	TotalTags   int       `json:"total_tags"`
	OldestFetch time.Time `json:"oldest_fetch,omitempty"`
}

// Stats reports the number of cached categories, total tags across them and
// the oldest fetch timestamp. OldestFetch is the zero time when the cache is
// empty.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var s Stats
	s.Categories = len(c.entries)
	for _, e := range c.entries {
		s.TotalTags += len(e.tags)
		if s.OldestFetch.IsZero() || e.fetchedAt.Before(s.OldestFetch) {
			s.OldestFetch = e.fetchedAt
		}
	}
	return s
}
