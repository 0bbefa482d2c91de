package blogeditor

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/blogeditor/posts"
)

// Lister lists post summaries.
type Lister interface {
	List(ctx context.Context) ([]posts.Summary, error)
}

// ListCache is an in-memory cache of the post listing with TTL. Saves made
// through the API invalidate it; edits made outside the editor show up once
// the TTL expires.
type ListCache struct {
	mu      sync.RWMutex
	posts   []posts.Summary
	fetched time.Time
	ttl     time.Duration
	source  Lister
	now     func() time.Time
}

// NewListCache creates a ListCache backed by source. A negative ttl
// disables caching.
func NewListCache(source Lister, ttl time.Duration) *ListCache {
	return &ListCache{source: source, ttl: ttl, now: time.Now}
}

func (c *ListCache) valid() bool {
	return c.posts != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ListCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// List returns the cached listing, reloading it when stale. It tries a read
// lock first and only takes the write lock when a reload is needed.
func (c *ListCache) List(ctx context.Context) ([]posts.Summary, error) {
	c.mu.RLock()
	if c.valid() {
		list := c.posts
		c.mu.RUnlock()
		return list, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	list, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}
	c.posts = list
	c.fetched = c.now()
	return list, nil
}
