package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/pkg/database"
	"github.com/ghuser/webapp/pkg/events"
	productdomain "github.com/ghuser/webapp/services/product/domain"
	domainevents "github.com/ghuser/webapp/services/product/domain/events"
	"github.com/ghuser/webapp/services/product/domain/models"
	"github.com/ghuser/webapp/services/product/infrastructure/persistence/postgres/db"
)

const (
	skuConstraint      = "products_sku_key"
	quantityConstraint = "products_quantity_non_negative"
)

// ProductRepository implements repositories.ProductRepository against PostgreSQL.
// Every mutation writes its domain event to the outbox in the same transaction.
type ProductRepository struct {
	db  *database.Database
	bus events.TxPublisher
}

// NewProductRepository returns a ProductRepository backed by the given pool
// and event bus. A nil bus disables event publishing.
func NewProductRepository(database *database.Database, bus events.TxPublisher) *ProductRepository {
	return &ProductRepository{db: database, bus: bus}
}

// Save persists a new Product and publishes product.created within the same transaction.
func (r *ProductRepository) Save(ctx context.Context, product *models.Product) error {
	quantity, err := quantityParam(product.Quantity)
	if err != nil {
		return err
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertProduct(ctx, db.InsertProductParams{
			ID:              product.ID,
			Name:            product.Name,
			Description:     product.Description,
			Sku:             product.SKU,
			Manufacturer:    product.Manufacturer,
			Quantity:        quantity,
			DateAdded:       product.CreatedAt,
			DateLastUpdated: product.UpdatedAt,
			OwnerUserID:     product.OwnerID,
		}); err != nil {
			return mapWriteErr("insert product", err)
		}
		event := domainevents.NewProductChanged(product)
		return r.publish(ctx, tx, domainevents.TopicProductCreated, event.EventID, event)
	})
}

// GetByID returns ErrProductNotFound if no row matches.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	row, err := db.New(r.db.DB()).GetProductByID(ctx, id)
	if err != nil {
		return nil, mapQueryErr(err)
	}
	return rowToProduct(row), nil
}

// List returns every product ordered by date_added.
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := db.New(r.db.DB()).ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return rowsToProducts(rows), nil
}

// ListByOwner returns ownerID's products ordered by date_added.
func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Product, error) {
	rows, err := db.New(r.db.DB()).ListProductsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query products by owner: %w", err)
	}
	return rowsToProducts(rows), nil
}

// Update runs SELECT ... FOR UPDATE, fn, UPDATE and the outbox insert in one
// transaction. A SKU collision is reported by products_sku_key.
func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, fn func(*models.Product) error) (*models.Product, error) {
	var updated *models.Product
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.GetProductByIDForUpdate(ctx, id)
		if err != nil {
			return mapQueryErr(err)
		}

		product := rowToProduct(row)
		if err := fn(product); err != nil {
			return err
		}
		quantity, err := quantityParam(product.Quantity)
		if err != nil {
			return err
		}

		if err := q.UpdateProduct(ctx, db.UpdateProductParams{
			ID:              product.ID,
			Name:            product.Name,
			Description:     product.Description,
			Sku:             product.SKU,
			Manufacturer:    product.Manufacturer,
			Quantity:        quantity,
			DateLastUpdated: product.UpdatedAt,
		}); err != nil {
			return mapWriteErr("update product", err)
		}
		event := domainevents.NewProductChanged(product)
		if err := r.publish(ctx, tx, domainevents.TopicProductUpdated, event.EventID, event); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete locks the row, runs check and deletes it in one transaction.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID, check func(*models.Product) error) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.GetProductByIDForUpdate(ctx, id)
		if err != nil {
			return mapQueryErr(err)
		}

		product := rowToProduct(row)
		if err := check(product); err != nil {
			return err
		}

		if err := q.DeleteProduct(ctx, id); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		event := domainevents.NewProductDeleted(product, time.Now().UTC())
		return r.publish(ctx, tx, domainevents.TopicProductDeleted, event.EventID, event)
	})
}

func (r *ProductRepository) publish(ctx context.Context, tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	if r.bus == nil {
		return nil
	}

	msg, err := events.NewMessage(ctx, eventID, domainevents.ProductVersion, event)
	if err != nil {
		return err
	}
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	if err := p.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func mapQueryErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return productdomain.ErrProductNotFound
	}
	return fmt.Errorf("query product: %w", err)
}

// mapWriteErr turns constraint violations into domain sentinels.
func mapWriteErr(op string, err error) error {
	if name, ok := database.IsUniqueViolation(err); ok && name == skuConstraint {
		return productdomain.ErrSKUTaken
	}
	if name, ok := database.ConstraintViolation(err, database.CheckViolation); ok && name == quantityConstraint {
		return productdomain.ErrNegativeQuantity
	}
	return fmt.Errorf("%s: %w", op, err)
}

// rowToProduct maps a db.Product to a domain models.Product.
func rowToProduct(row db.Product) *models.Product {
	return &models.Product{
		ID: row.ID,
		Fields: models.Fields{
			Name:         row.Name,
			Description:  row.Description,
			SKU:          row.Sku,
			Manufacturer: row.Manufacturer,
			Quantity:     int(row.Quantity),
		},
		OwnerID:   row.OwnerUserID,
		CreatedAt: row.DateAdded,
		UpdatedAt: row.DateLastUpdated,
	}
}

func rowsToProducts(rows []db.Product) []*models.Product {
	out := make([]*models.Product, len(rows))
	for i, row := range rows {
		out[i] = rowToProduct(row)
	}
	return out
}

// quantityParam narrows q to the INTEGER column. Negative values are left to
// the products_quantity_non_negative constraint.
func quantityParam(q int) (int32, error) {
	if q > models.MaxQuantity {
		return 0, productdomain.ErrQuantityTooLarge
	}
	return int32(q), nil
}
