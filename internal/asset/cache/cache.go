// Package cache is a TTL keyed store for merged asset snapshots.
// Expiry is lazy: entries are only checked when read, there is no
// background sweeper.
package cache

import (
	"sync"
	"time"

	"assetwatch/internal/asset"
)

// entry stores one snapshot with the time it was stored.
type entry struct {
	storedAt time.Time
	snap     asset.Snapshot
}

// Cache caches snapshots per key for a TTL. MaxItems, when positive,
// caps the map with a best-effort eviction (expired entries first,
// then arbitrary keys).
type Cache struct {
	TTL      time.Duration
	MaxItems int

	mu    sync.RWMutex
	items map[string]entry
}

func New(ttl time.Duration, maxItems int) *Cache {
	return &Cache{TTL: ttl, MaxItems: maxItems, items: make(map[string]entry)}
}

// Get returns the cached snapshot for key if it exists and has not
// outlived the TTL. The stored value is returned unchanged.
func (c *Cache) Get(key string) (asset.Snapshot, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return asset.Snapshot{}, false
	}
	if time.Since(e.storedAt) > c.TTL {
		return asset.Snapshot{}, false
	}
	return e.snap, true
}

// Set stores snap under key with storedAt = now, overwriting any
// prior entry.
func (c *Cache) Set(key string, snap asset.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{storedAt: time.Now(), snap: snap}
	if c.MaxItems > 0 && len(c.items) > c.MaxItems {
		for k, e := range c.items {
			if time.Since(e.storedAt) > c.TTL {
				delete(c.items, k)
			}
			if len(c.items) <= c.MaxItems {
				return
			}
		}
		for k := range c.items {
			if len(c.items) <= c.MaxItems {
				return
			}
			delete(c.items, k)
		}
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
