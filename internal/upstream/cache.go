package upstream

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	body      string
	expiresAt time.Time
}

// Cache keeps successful upstream bodies in memory for a fixed TTL.
// Concurrent misses for the same key share a single fetch.
type Cache struct {
	ttl     time.Duration
	entries map[string]cacheEntry
	mutex   sync.RWMutex
	group   singleflight.Group
	now     func() time.Time
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns a live entry for key.
func (c *Cache) Get(key string) (string, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, found := c.entries[key]
	if !found || !c.now().Before(entry.expiresAt) {
		return "", false
	}
	return entry.body, true
}

// Set stores body under key.
func (c *Cache) Set(key, body string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry{body: body, expiresAt: c.now().Add(c.ttl)}
}

// Do returns the cached body for key or runs fetch once for all concurrent
// callers. Each caller stops waiting when its own ctx is done; the shared
// fetch keeps running for the others. Failed fetches are not cached.
func (c *Cache) Do(ctx context.Context, key string, fetch func() (string, error)) (string, error) {
	if body, ok := c.Get(key); ok {
		return body, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		body, err := fetch()
		if err != nil {
			return "", err
		}
		c.Set(key, body)
		return body, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// EvictExpired drops expired entries and returns how many were removed.
func (c *Cache) EvictExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}
