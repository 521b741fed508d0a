package cache

import (
	"context"
	"sync"
	"time"

	"recstudio/internal/domain"
)

type memoryEntry struct {
	defaults  domain.StudioDefaults
	expiresAt time.Time
}

// MemoryDefaultsCache is the in-process fallback. TTL <= 0 disables expiry.
type MemoryDefaultsCache struct {
	entries sync.Map
	ttl     time.Duration
}

func NewMemoryDefaultsCache(ttl time.Duration) *MemoryDefaultsCache {
	return &MemoryDefaultsCache{ttl: ttl}
}

func (c *MemoryDefaultsCache) Get(ctx context.Context, studioID int64) (*domain.StudioDefaults, error) {
	val, ok := c.entries.Load(studioID)
	if !ok {
		return nil, nil
	}
	entry := val.(*memoryEntry)
	if c.ttl > 0 && time.Now().After(entry.expiresAt) {
		c.entries.Delete(studioID)
		return nil, nil
	}
	cp := entry.defaults // copy so callers cannot mutate the cached entry
	return &cp, nil
}

func (c *MemoryDefaultsCache) Set(ctx context.Context, d *domain.StudioDefaults) error {
	c.entries.Store(d.StudioID, &memoryEntry{
		defaults:  *d,
		expiresAt: time.Now().Add(c.ttl),
	})
	return nil
}

func (c *MemoryDefaultsCache) Invalidate(ctx context.Context, studioID int64) error {
	c.entries.Delete(studioID)
	return nil
}
