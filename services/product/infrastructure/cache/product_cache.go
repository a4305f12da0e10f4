// Package cache adapts the shared product read-model store to the product
// domain model.
package cache

import (
	"context"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/webapp/pkg/cache"
	"github.com/ghuser/webapp/services/product/domain/models"
)

// ProductCache stores models.Product values in a pkg/cache.ProductStore.
type ProductCache struct {
	store pkgcache.ProductStore
}

// NewProductCache returns nil when redis is nil so callers can treat a
// disabled cache as absent.
func NewProductCache(redis *pkgcache.RedisClient) *ProductCache {
	if redis == nil {
		return nil
	}
	return &ProductCache{store: pkgcache.NewProductCache(redis)}
}

// NewMemoryProductCache returns a ProductCache over pkg/cache.MemoryProductCache.
func NewMemoryProductCache() *ProductCache {
	return &ProductCache{store: pkgcache.NewMemoryProductCache()}
}

// Get returns redis.Nil on a miss or for a deleted product.
func (c *ProductCache) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	cp, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromCached(cp), nil
}

// Set stores p unless the cache already holds a newer version or a tombstone.
func (c *ProductCache) Set(ctx context.Context, p *models.Product) error {
	return c.store.Set(ctx, ToCached(p))
}

// MarkDeleted tombstones id so late writers cannot bring it back.
func (c *ProductCache) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	return c.store.MarkDeleted(ctx, id)
}

// ToCached maps a domain product to its cache read model.
func ToCached(p *models.Product) *pkgcache.CachedProduct {
	return &pkgcache.CachedProduct{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		SKU:             p.SKU,
		Manufacturer:    p.Manufacturer,
		Quantity:        p.Quantity,
		OwnerID:         p.OwnerID,
		DateAdded:       p.CreatedAt,
		DateLastUpdated: p.UpdatedAt,
	}
}

// FromCached maps a cache read model back to a domain product.
func FromCached(cp *pkgcache.CachedProduct) *models.Product {
	return &models.Product{
		ID: cp.ID,
		Fields: models.Fields{
			Name:         cp.Name,
			Description:  cp.Description,
			SKU:          cp.SKU,
			Manufacturer: cp.Manufacturer,
			Quantity:     cp.Quantity,
		},
		OwnerID:   cp.OwnerID,
		CreatedAt: cp.DateAdded,
		UpdatedAt: cp.DateLastUpdated,
	}
}
