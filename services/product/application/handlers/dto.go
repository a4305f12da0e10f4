package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/webapp/pkg/apperr"
	"github.com/ghuser/webapp/services/product/domain/models"
)

// ProductRequest is the request body for POST, PUT and PATCH on products.
// Read-only fields (id, owner, timestamps) are ignored if present.
type ProductRequest struct {
	Name         string `json:"name"         validate:"notblank,max=255" example:"Widget"`
	Description  string `json:"description"  validate:"max=1000"         example:"A blue widget"`
	SKU          string `json:"sku"          validate:"notblank,max=255" example:"W-0001"`
	Manufacturer string `json:"manufacturer" validate:"notblank,max=255" example:"Acme"`
	Quantity     *int   `json:"quantity"     validate:"required,gte=0,lte=2147483647" example:"10"`
} // @name ProductRequest

func (r *ProductRequest) fields() models.Fields {
	f := models.Fields{
		Name:         r.Name,
		Description:  r.Description,
		SKU:          r.SKU,
		Manufacturer: r.Manufacturer,
	}
	if r.Quantity != nil {
		f.Quantity = *r.Quantity
	}
	return f
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID              uuid.UUID `json:"id"              example:"123e4567-e89b-12d3-a456-426614174000"`
	Name            string    `json:"name"            example:"Widget"`
	Description     string    `json:"description"     example:"A blue widget"`
	SKU             string    `json:"sku"             example:"W-0001"`
	Manufacturer    string    `json:"manufacturer"    example:"Acme"`
	Quantity        int       `json:"quantity"        example:"10"`
	DateAdded       time.Time `json:"dateAdded"       example:"2026-01-15T10:30:00Z"`
	DateLastUpdated time.Time `json:"dateLastUpdated" example:"2026-01-15T10:30:00Z"`
	OwnerUserID     uuid.UUID `json:"ownerUserId"     example:"550e8400-e29b-41d4-a716-446655440000"`
} // @name ProductResponse

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		SKU:             p.SKU,
		Manufacturer:    p.Manufacturer,
		Quantity:        p.Quantity,
		DateAdded:       p.CreatedAt,
		DateLastUpdated: p.UpdatedAt,
		OwnerUserID:     p.OwnerID,
	}
}

func toProductResponses(ps []*models.Product) []ProductResponse {
	out := make([]ProductResponse, len(ps))
	for i, p := range ps {
		out[i] = toProductResponse(p)
	}
	return out
}

// productID parses the {id} path parameter.
func productID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.NewFieldError("id", "Must be a valid UUID")
	}
	return id, nil
}
