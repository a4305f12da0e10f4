package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxQuantity is the largest quantity the INTEGER column can hold.
const MaxQuantity = math.MaxInt32

// Fields are the client-settable attributes of a Product. Updates replace
// all of them at once.
type Fields struct {
	Name         string
	Description  string
	SKU          string
	Manufacturer string
	Quantity     int
}

// Product is the owned-resource aggregate.
type Product struct {
	ID uuid.UUID
	Fields
	OwnerID   uuid.UUID // immutable after creation
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct constructs a Product owned by ownerID with a generated ID and
// both timestamps set to now.
func NewProduct(ownerID uuid.UUID, f Fields, now time.Time) *Product {
	return &Product{
		ID:        uuid.New(),
		Fields:    f,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply replaces every client-settable field. UpdatedAt strictly increases
// on every call, by one microsecond when the clock has not moved past it, so
// it orders versions of the same product. ID, OwnerID and CreatedAt are
// untouched.
func (p *Product) Apply(f Fields, now time.Time) {
	p.Fields = f
	if now.After(p.UpdatedAt) {
		p.UpdatedAt = now
		return
	}
	p.UpdatedAt = p.UpdatedAt.Add(time.Microsecond)
}
