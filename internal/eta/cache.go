package eta

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/ride-client/internal/models"
)

// Cache is a tiny in-memory TTL cache for leg durations keyed by coords.
type Cache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	v  float64
	ts time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{store: make(map[string]cacheEntry), ttl: ttl}
}

func keyFor(a, b models.LatLng) string {
	return fmtCoord(a) + "->" + fmtCoord(b)
}

func fmtCoord(c models.LatLng) string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// Get returns the cached value and true if present and not expired.
func (c *Cache) Get(a, b models.LatLng) (float64, bool) {
	k := keyFor(a, b)
	c.mu.RLock()
	e, ok := c.store[k]
	c.mu.RUnlock()
	if !ok {
		return 0, false
	}
	if time.Since(e.ts) > c.ttl {
		c.mu.Lock()
		delete(c.store, k)
		c.mu.Unlock()
		return 0, false
	}
	return e.v, true
}

func (c *Cache) Set(a, b models.LatLng, v float64) {
	k := keyFor(a, b)
	c.mu.Lock()
	c.store[k] = cacheEntry{v: v, ts: time.Now()}
	c.mu.Unlock()
}

// CachingClient wraps a Client with the TTL cache above. The user→destination
// leg is identical for every marker in a batch, so this collapses N lookups
// into one.
type CachingClient struct {
	Inner Client
	Cache *Cache
}

func (c *CachingClient) LegSeconds(ctx context.Context, from, to models.LatLng) (float64, error) {
	if v, ok := c.Cache.Get(from, to); ok {
		return v, nil
	}
	v, err := c.Inner.LegSeconds(ctx, from, to)
	if err != nil {
		return 0, err
	}
	c.Cache.Set(from, to, v)
	return v, nil
}
