package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/services/product/domain/models"
)

// Watermill topics published by the product repository inside the same
// transaction as the row change.
const (
	TopicProductCreated = "product.created"
	TopicProductUpdated = "product.updated"
	TopicProductDeleted = "product.deleted"
)

// Topics lists every product topic, in the order consumers subscribe.
var Topics = []string{TopicProductCreated, TopicProductUpdated, TopicProductDeleted}

// ProductVersion is the current schema version of ProductChangedEvent and ProductDeletedEvent.
const ProductVersion = 1

// ProductChangedEvent is published after a product is created or updated.
// It carries the full post-change state so consumers can refresh read models.
type ProductChangedEvent struct {
	EventID         uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version         int       `json:"version"`  // Schema version; increment on breaking changes
	ProductID       uuid.UUID `json:"product_id"`
	OwnerID         uuid.UUID `json:"owner_user_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	SKU             string    `json:"sku"`
	Manufacturer    string    `json:"manufacturer"`
	Quantity        int       `json:"quantity"`
	DateAdded       time.Time `json:"date_added"`
	DateLastUpdated time.Time `json:"date_last_updated"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// ProductDeletedEvent is published after a product is removed.
type ProductDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ProductID  uuid.UUID `json:"product_id"`
	OwnerID    uuid.UUID `json:"owner_user_id"`
	SKU        string    `json:"sku"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewProductChanged builds the event for the current state of p.
func NewProductChanged(p *models.Product) ProductChangedEvent {
	return ProductChangedEvent{
		EventID:         uuid.New(),
		Version:         ProductVersion,
		ProductID:       p.ID,
		OwnerID:         p.OwnerID,
		Name:            p.Name,
		Description:     p.Description,
		SKU:             p.SKU,
		Manufacturer:    p.Manufacturer,
		Quantity:        p.Quantity,
		DateAdded:       p.CreatedAt,
		DateLastUpdated: p.UpdatedAt,
		OccurredAt:      p.UpdatedAt,
	}
}

// NewProductDeleted builds the event for the removal of p at now.
func NewProductDeleted(p *models.Product, now time.Time) ProductDeletedEvent {
	return ProductDeletedEvent{
		EventID:    uuid.New(),
		Version:    ProductVersion,
		ProductID:  p.ID,
		OwnerID:    p.OwnerID,
		SKU:        p.SKU,
		OccurredAt: now,
	}
}

// Product rebuilds the domain model carried by the event.
func (e ProductChangedEvent) Product() *models.Product {
	return &models.Product{
		ID: e.ProductID,
		Fields: models.Fields{
			Name:         e.Name,
			Description:  e.Description,
			SKU:          e.SKU,
			Manufacturer: e.Manufacturer,
			Quantity:     e.Quantity,
		},
		OwnerID:   e.OwnerID,
		CreatedAt: e.DateAdded,
		UpdatedAt: e.DateLastUpdated,
	}
}
