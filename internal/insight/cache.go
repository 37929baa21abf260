package insight

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cachedInsight pairs an insight with its store time for TTL checks.
type cachedInsight struct {
	insight  *ProjectInsight
	storedAt time.Time
}

// Cache holds recent per-project insights. Concurrent dashboard tabs asking
// for the same project within the TTL share one model call's result instead
// of issuing redundant calls.
type Cache struct {
	lru *lru.Cache[string, cachedInsight]
	ttl time.Duration
	now func() time.Time
}

// NewCache creates a cache with the given capacity and entry TTL.
// A nil cache is valid and disables caching.
func NewCache(size int, ttl time.Duration) (*Cache, error) {
	l, err := lru.New[string, cachedInsight](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l, ttl: ttl, now: time.Now}, nil
}

// Get returns the cached insight for a project if present and fresh.
func (c *Cache) Get(projectID string) (*ProjectInsight, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.lru.Get(projectID)
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		c.lru.Remove(projectID)
		return nil, false
	}
	return entry.insight, true
}

// Put stores an insight for a project.
func (c *Cache) Put(projectID string, in *ProjectInsight) {
	if c == nil {
		return
	}
	c.lru.Add(projectID, cachedInsight{insight: in, storedAt: c.now()})
}

// Invalidate drops the cached insight for a project, called after writes
// that change the underlying task data.
func (c *Cache) Invalidate(projectID string) {
	if c == nil {
		return
	}
	c.lru.Remove(projectID)
}
