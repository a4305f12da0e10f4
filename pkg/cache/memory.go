package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MemoryProductCache is a ProductStore over a map with the same ordering
// and tombstone rules as ProductCache. It has no TTL. Used by tests.
type MemoryProductCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]map[string]string
}

// NewMemoryProductCache returns an empty MemoryProductCache.
func NewMemoryProductCache() *MemoryProductCache {
	return &MemoryProductCache{entries: make(map[uuid.UUID]map[string]string)}
}

func (c *MemoryProductCache) Get(_ context.Context, id uuid.UUID) (*CachedProduct, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	vals, ok := c.entries[id]
	if !ok || isTombstone(vals) {
		return nil, redis.Nil
	}
	return decodeProduct(vals)
}

func (c *MemoryProductCache) Set(_ context.Context, p *CachedProduct) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if acceptsWrite(c.entries[p.ID], p.DateLastUpdated) {
		c.entries[p.ID] = encodeProduct(p)
	}
	return nil
}

func (c *MemoryProductCache) MarkDeleted(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = map[string]string{tombstoneField: "1"}
	return nil
}
