// Package memory provides an in-process ProductRepository for tests. It
// enforces the same SKU uniqueness and quantity rules as the products table.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	productdomain "github.com/ghuser/webapp/services/product/domain"
	"github.com/ghuser/webapp/services/product/domain/models"
)

// ProductRepository stores products in maps guarded by a mutex.
type ProductRepository struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*models.Product
	bySKU  map[string]uuid.UUID
	seq    map[uuid.UUID]int // insertion order, breaks CreatedAt ties
	writes int
}

// NewProductRepository returns an empty repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		byID:  make(map[uuid.UUID]*models.Product),
		bySKU: make(map[string]uuid.UUID),
		seq:   make(map[uuid.UUID]int),
	}
}

// Save inserts a copy of product.
func (r *ProductRepository) Save(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.Quantity < 0 {
		return productdomain.ErrNegativeQuantity
	}
	if product.Quantity > models.MaxQuantity {
		return productdomain.ErrQuantityTooLarge
	}
	if _, taken := r.bySKU[product.SKU]; taken {
		return productdomain.ErrSKUTaken
	}
	stored := *product
	r.byID[product.ID] = &stored
	r.bySKU[product.SKU] = product.ID
	r.seq[product.ID] = len(r.seq)
	r.writes++
	return nil
}

// GetByID returns a copy of the product with id.
func (r *ProductRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, productdomain.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

// List returns copies of every product ordered by creation time.
func (r *ProductRepository) List(_ context.Context) ([]*models.Product, error) {
	return r.filter(func(*models.Product) bool { return true }), nil
}

// ListByOwner returns copies of ownerID's products ordered by creation time.
func (r *ProductRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*models.Product, error) {
	return r.filter(func(p *models.Product) bool { return p.OwnerID == ownerID }), nil
}

// Update applies fn to a working copy and stores it only if fn succeeds and
// the new SKU is free.
func (r *ProductRepository) Update(_ context.Context, id uuid.UUID, fn func(*models.Product) error) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, productdomain.ErrProductNotFound
	}
	working := *current
	if err := fn(&working); err != nil {
		return nil, err
	}
	if working.Quantity < 0 {
		return nil, productdomain.ErrNegativeQuantity
	}
	if working.Quantity > models.MaxQuantity {
		return nil, productdomain.ErrQuantityTooLarge
	}
	if holder, taken := r.bySKU[working.SKU]; taken && holder != id {
		return nil, productdomain.ErrSKUTaken
	}

	delete(r.bySKU, current.SKU)
	r.bySKU[working.SKU] = id
	r.byID[id] = &working
	r.writes++
	out := working
	return &out, nil
}

// Delete runs check against the stored product and removes it if check passes.
func (r *ProductRepository) Delete(_ context.Context, id uuid.UUID, check func(*models.Product) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return productdomain.ErrProductNotFound
	}
	snapshot := *current
	if err := check(&snapshot); err != nil {
		return err
	}
	delete(r.bySKU, current.SKU)
	delete(r.byID, id)
	r.writes++
	return nil
}

// Writes reports how many mutations have been committed.
func (r *ProductRepository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *ProductRepository) filter(keep func(*models.Product) bool) []*models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Product, 0, len(r.byID))
	for _, p := range r.byID {
		if keep(p) {
			c := *p
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.Product) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return r.seq[a.ID] - r.seq[b.ID]
	})
	return out
}
