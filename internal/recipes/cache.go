package recipes

import (
	"slices"
	"sync"
	"time"
)

type cacheEntry struct {
	recipes []Recipe
	expires time.Time
}

// resultCache keeps search results for a fixed stale time.
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *resultCache) get(key string) ([]Recipe, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return slices.Clone(entry.recipes), true
}

func (c *resultCache) put(key string, recipes []Recipe) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{recipes: slices.Clone(recipes), expires: now.Add(c.ttl)}
}
