package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/services/product/domain/models"
)

// ProductRepository is the persistence interface for the Product aggregate.
// The domain layer owns this interface; infrastructure implements it.
type ProductRepository interface {
	// Save inserts a new product. Returns ErrSKUTaken when the SKU is in use.
	Save(ctx context.Context, product *models.Product) error

	// GetByID returns ErrProductNotFound when no product has the id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)

	// List returns every product ordered by creation time.
	List(ctx context.Context) ([]*models.Product, error)

	// ListByOwner returns the products owned by ownerID ordered by creation time.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Product, error)

	// Update locks the product, applies fn and persists the result in one
	// unit of work. fn returning an error aborts without writing. A SKU
	// collision with another product yields ErrSKUTaken.
	Update(ctx context.Context, id uuid.UUID, fn func(*models.Product) error) (*models.Product, error)

	// Delete locks the product, runs check and removes it in one unit of
	// work. check returning an error aborts without deleting.
	Delete(ctx context.Context, id uuid.UUID, check func(*models.Product) error) error
}
