package domain

import (
	"fmt"

	"github.com/ghuser/webapp/pkg/apperr"
)

// Sentinel errors for the product domain. Use errors.Is() to check these;
// each also matches its apperr kind.
var (
	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = fmt.Errorf("product %w", apperr.ErrNotFound)

	// ErrSKUTaken indicates another product already uses the SKU.
	ErrSKUTaken = fmt.Errorf("sku already in use: %w", apperr.ErrConflict)

	// ErrNegativeQuantity is returned when the store rejects a negative quantity.
	ErrNegativeQuantity error = apperr.NewFieldError("quantity", "Must be greater than or equal to 0")

	// ErrQuantityTooLarge is returned for a quantity above models.MaxQuantity.
	ErrQuantityTooLarge error = apperr.NewFieldError("quantity", "Must be less than or equal to 2147483647")
)
