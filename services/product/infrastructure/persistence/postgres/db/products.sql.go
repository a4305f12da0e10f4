package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const productColumns = `id, name, description, sku, manufacturer, quantity, date_added, date_last_updated, owner_user_id`

const insertProduct = `-- name: InsertProduct :exec
INSERT INTO products (` + productColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

type InsertProductParams struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Sku             string
	Manufacturer    string
	Quantity        int32
	DateAdded       time.Time
	DateLastUpdated time.Time
	OwnerUserID     uuid.UUID
}

func (q *Queries) InsertProduct(ctx context.Context, arg InsertProductParams) error {
	_, err := q.db.ExecContext(ctx, insertProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Sku,
		arg.Manufacturer,
		arg.Quantity,
		arg.DateAdded,
		arg.DateLastUpdated,
		arg.OwnerUserID,
	)
	return err
}

const getProductByID = `-- name: GetProductByID :one
SELECT ` + productColumns + ` FROM products WHERE id = $1
`

func (q *Queries) GetProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	return scanProduct(q.db.QueryRowContext(ctx, getProductByID, id))
}

const getProductByIDForUpdate = `-- name: GetProductByIDForUpdate :one
SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetProductByIDForUpdate(ctx context.Context, id uuid.UUID) (Product, error) {
	return scanProduct(q.db.QueryRowContext(ctx, getProductByIDForUpdate, id))
}

const listProducts = `-- name: ListProducts :many
SELECT ` + productColumns + ` FROM products ORDER BY date_added, id
`

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.QueryContext(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

const listProductsByOwner = `-- name: ListProductsByOwner :many
SELECT ` + productColumns + ` FROM products WHERE owner_user_id = $1 ORDER BY date_added, id
`

func (q *Queries) ListProductsByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]Product, error) {
	rows, err := q.db.QueryContext(ctx, listProductsByOwner, ownerUserID)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

const updateProduct = `-- name: UpdateProduct :exec
UPDATE products
SET name = $2, description = $3, sku = $4, manufacturer = $5, quantity = $6, date_last_updated = $7
WHERE id = $1
`

type UpdateProductParams struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Sku             string
	Manufacturer    string
	Quantity        int32
	DateLastUpdated time.Time
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) error {
	_, err := q.db.ExecContext(ctx, updateProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Sku,
		arg.Manufacturer,
		arg.Quantity,
		arg.DateLastUpdated,
	)
	return err
}

const deleteProduct = `-- name: DeleteProduct :exec
DELETE FROM products WHERE id = $1
`

func (q *Queries) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteProduct, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Sku,
		&p.Manufacturer,
		&p.Quantity,
		&p.DateAdded,
		&p.DateLastUpdated,
		&p.OwnerUserID,
	)
	return p, err
}

func scanProducts(rows *sql.Rows) ([]Product, error) {
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
