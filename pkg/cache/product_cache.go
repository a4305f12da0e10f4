package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ProductCacheTTL bounds how long a product or tombstone stays cached
	// without a newer write refreshing it.
	ProductCacheTTL = 1 * time.Hour

	productCacheKeyPrefix = "product"

	// tombstoneField marks a key whose product was deleted. No later write
	// may replace it; product ids are never reused.
	tombstoneField = "deleted"

	// setAttempts bounds the optimistic WATCH retries in Set.
	setAttempts = 5
)

// CachedProduct is the read model stored in Redis as a hash.
// The database stays the source of truth. Writes are ordered by
// DateLastUpdated so a late writer cannot replace a newer entry.
type CachedProduct struct {
	ID              uuid.UUID
	Name            string
	Description     string
	SKU             string
	Manufacturer    string
	Quantity        int
	OwnerID         uuid.UUID
	DateAdded       time.Time
	DateLastUpdated time.Time
}

// ProductStore is the product read-model contract shared by the Redis and
// in-memory implementations. Get reports redis.Nil for a miss or a tombstone.
type ProductStore interface {
	Get(ctx context.Context, id uuid.UUID) (*CachedProduct, error)
	Set(ctx context.Context, p *CachedProduct) error
	MarkDeleted(ctx context.Context, id uuid.UUID) error
}

// ProductCache stores products in Redis under "product:{productID}".
type ProductCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewProductCache creates a ProductCache backed by the given RedisClient.
func NewProductCache(r *RedisClient) *ProductCache {
	return &ProductCache{client: r, ttl: ProductCacheTTL}
}

// Get retrieves a cached product.
// Returns redis.Nil when the key does not exist, has expired or is a tombstone.
func (c *ProductCache) Get(ctx context.Context, id uuid.UUID) (*CachedProduct, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 || isTombstone(vals) {
		return nil, redis.Nil
	}
	return decodeProduct(vals)
}

// Set stores p unless the key holds a tombstone or a newer DateLastUpdated.
// A superseded write is dropped silently. The read and the write run under
// WATCH so concurrent writers cannot interleave between them.
func (c *ProductCache) Set(ctx context.Context, p *CachedProduct) error {
	key := c.key(p.ID)
	fields := hashArgs(encodeProduct(p))
	rdb := c.client.Client()

	for range setAttempts {
		err := rdb.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.HGetAll(ctx, key).Result()
			if err != nil {
				return err
			}
			if !acceptsWrite(current, p.DateLastUpdated) {
				return nil
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, key)
				pipe.HSet(ctx, key, fields...)
				pipe.Expire(ctx, key, c.ttl)
				return nil
			})
			return err
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("cache set: %w", err)
		}
		return nil
	}
	return fmt.Errorf("cache set %s: %w", p.ID, redis.TxFailedErr)
}

// MarkDeleted replaces the entry with a tombstone that lives for the TTL.
func (c *ProductCache) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	key := c.key(id)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, tombstoneField, "1")
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache mark deleted: %w", err)
	}
	return nil
}

func (c *ProductCache) key(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", productCacheKeyPrefix, id)
}

// acceptsWrite reports whether a product last updated at updated may replace
// the hash currently stored. Equal timestamps are accepted so redelivered
// events stay idempotent. An unreadable entry is always replaced.
func acceptsWrite(current map[string]string, updated time.Time) bool {
	if len(current) == 0 {
		return true
	}
	if isTombstone(current) {
		return false
	}
	stored, err := time.Parse(time.RFC3339Nano, current["date_last_updated"])
	if err != nil {
		return true
	}
	return !updated.Before(stored)
}

func isTombstone(vals map[string]string) bool {
	return vals[tombstoneField] == "1"
}

func encodeProduct(p *CachedProduct) map[string]string {
	return map[string]string{
		"id":                p.ID.String(),
		"name":              p.Name,
		"description":       p.Description,
		"sku":               p.SKU,
		"manufacturer":      p.Manufacturer,
		"quantity":          strconv.Itoa(p.Quantity),
		"owner_user_id":     p.OwnerID.String(),
		"date_added":        p.DateAdded.UTC().Format(time.RFC3339Nano),
		"date_last_updated": p.DateLastUpdated.UTC().Format(time.RFC3339Nano),
	}
}

// hashArgs flattens m into the field/value pairs HSET takes.
func hashArgs(m map[string]string) []any {
	args := make([]any, 0, len(m)*2)
	for k, v := range m {
		args = append(args, k, v)
	}
	return args
}

func decodeProduct(vals map[string]string) (*CachedProduct, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	owner, err := uuid.Parse(vals["owner_user_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse owner_user_id: %w", err)
	}
	qty, err := strconv.Atoi(vals["quantity"])
	if err != nil {
		return nil, fmt.Errorf("cache parse quantity: %w", err)
	}
	added, err := time.Parse(time.RFC3339Nano, vals["date_added"])
	if err != nil {
		return nil, fmt.Errorf("cache parse date_added: %w", err)
	}
	updated, err := time.Parse(time.RFC3339Nano, vals["date_last_updated"])
	if err != nil {
		return nil, fmt.Errorf("cache parse date_last_updated: %w", err)
	}

	return &CachedProduct{
		ID:              id,
		Name:            vals["name"],
		Description:     vals["description"],
		SKU:             vals["sku"],
		Manufacturer:    vals["manufacturer"],
		Quantity:        qty,
		OwnerID:         owner,
		DateAdded:       added,
		DateLastUpdated: updated,
	}, nil
}
