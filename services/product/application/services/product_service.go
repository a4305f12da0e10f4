package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/webapp/pkg/apperr"
	"github.com/ghuser/webapp/pkg/auth"
	"github.com/ghuser/webapp/pkg/logger"
	"github.com/ghuser/webapp/pkg/telemetry"
	"github.com/ghuser/webapp/services/product/domain/models"
	"github.com/ghuser/webapp/services/product/domain/repositories"
	domainsvcs "github.com/ghuser/webapp/services/product/domain/services"
)

// ProductCache is the read-through cache used by GetByID.
// Get returns redis.Nil on a miss or for a deleted product. Set must drop a
// product older than the cached one, and MarkDeleted must block later Sets.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Set(ctx context.Context, p *models.Product) error
	MarkDeleted(ctx context.Context, id uuid.UUID) error
}

// ProductService orchestrates product reads and owner-only mutations.
// Event publishing is handled by the repository layer (outbox pattern).
// Single reads are served from Redis when a cache is configured.
type ProductService struct {
	repo  repositories.ProductRepository
	cache ProductCache
	log   logger.Logger
	now   func() time.Time
}

// NewProductService returns a ProductService. cache may be nil.
func NewProductService(repo repositories.ProductRepository, cache ProductCache, log logger.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, log: log, now: utcNow}
}

// utcNow truncates to microseconds to match PostgreSQL timestamptz precision.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Create validates f and stores a product owned by identity.
func (s *ProductService) Create(ctx context.Context, identity auth.Identity, f models.Fields) (*models.Product, error) {
	if err := auth.Authorize(&identity, identity.AccountID, auth.Create); err != nil {
		return nil, err
	}
	if err := domainsvcs.ValidateFields(f); err != nil {
		return nil, err
	}

	product := models.NewProduct(identity.AccountID, f, s.now())
	if err := s.repo.Save(ctx, product); err != nil {
		s.logRejection(ctx, "create rejected", err, "account_id", identity.AccountID, "sku", f.SKU)
		return nil, fmt.Errorf("save product: %w", err)
	}

	telemetry.RecordProductMutation(ctx, auth.Create.String())
	s.log.InfoContext(ctx, "product created", "product_id", product.ID, "account_id", identity.AccountID)
	return product, nil
}

// GetByID retrieves a Product using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Warm the cache with the Postgres result. A row read before a concurrent
//     update or delete cannot replace the newer entry the writer left.
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			telemetry.RecordCacheLookup(ctx, true)
			return cached, nil
		}
		telemetry.RecordCacheLookup(ctx, false)
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
		}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			s.log.WarnContext(ctx, "product cache warm failed", "product_id", id, "error", err)
		}
	}
	return product, nil
}

// ListAll returns every product ordered by creation time.
func (s *ProductService) ListAll(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListMine returns the products owned by identity.
func (s *ProductService) ListMine(ctx context.Context, identity auth.Identity) ([]*models.Product, error) {
	if err := auth.Authorize(&identity, identity.AccountID, auth.ReadMine); err != nil {
		return nil, err
	}
	products, err := s.repo.ListByOwner(ctx, identity.AccountID)
	if err != nil {
		return nil, fmt.Errorf("list own products: %w", err)
	}
	return products, nil
}

// Update replaces every field of the product when identity owns it.
// Validation runs before the store is touched.
func (s *ProductService) Update(ctx context.Context, identity auth.Identity, id uuid.UUID, f models.Fields) (*models.Product, error) {
	if err := domainsvcs.ValidateFields(f); err != nil {
		return nil, err
	}

	product, err := s.repo.Update(ctx, id, func(p *models.Product) error {
		if err := auth.Authorize(&identity, p.OwnerID, auth.Update); err != nil {
			return err
		}
		p.Apply(f, s.now())
		return nil
	})
	if err != nil {
		s.logRejection(ctx, "update rejected", err, "account_id", identity.AccountID, "product_id", id, "sku", f.SKU)
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.refresh(ctx, product)
	telemetry.RecordProductMutation(ctx, auth.Update.String())
	s.log.InfoContext(ctx, "product updated", "product_id", id, "account_id", identity.AccountID)
	return product, nil
}

// Delete removes the product when identity owns it.
func (s *ProductService) Delete(ctx context.Context, identity auth.Identity, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id, func(p *models.Product) error {
		return auth.Authorize(&identity, p.OwnerID, auth.Delete)
	})
	if err != nil {
		s.logRejection(ctx, "delete rejected", err, "account_id", identity.AccountID, "product_id", id)
		return fmt.Errorf("delete product: %w", err)
	}

	s.tombstone(ctx, id)
	telemetry.RecordProductMutation(ctx, auth.Delete.String())
	s.log.InfoContext(ctx, "product deleted", "product_id", id, "account_id", identity.AccountID)
	return nil
}

// refresh caches the committed state of product.
func (s *ProductService) refresh(ctx context.Context, product *models.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, product); err != nil {
		s.log.WarnContext(ctx, "product cache refresh failed", "product_id", product.ID, "error", err)
	}
}

// tombstone marks id deleted in the cache.
func (s *ProductService) tombstone(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.MarkDeleted(ctx, id); err != nil {
		s.log.WarnContext(ctx, "product cache tombstone failed", "product_id", id, "error", err)
	}
}

// logRejection logs client-caused failures at Warn. Other errors are left
// to the HTTP layer, which logs them once as 500s.
func (s *ProductService) logRejection(ctx context.Context, msg string, err error, args ...any) {
	if errors.Is(err, apperr.ErrForbidden) || errors.Is(err, apperr.ErrConflict) || errors.Is(err, apperr.ErrNotFound) {
		s.log.WarnContext(ctx, msg, append(args, "reason", err.Error())...)
	}
}
