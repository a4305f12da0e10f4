// Package services contains stateless domain services for the product
// bounded context.
package services

import (
	"errors"
	"fmt"

	"github.com/ghuser/webapp/pkg/apperr"
	pkgvalidator "github.com/ghuser/webapp/pkg/validator"
	"github.com/ghuser/webapp/services/product/domain/models"
)

// ValidateFields enforces the product field rules before any store access:
//   - name, sku and manufacturer are required, at most 255 characters
//   - description is optional, at most 1000 characters
//   - quantity is between 0 and models.MaxQuantity
func ValidateFields(f models.Fields) error {
	fe := &apperr.FieldError{}
	check(fe, "name", f.Name, "notblank,max=255")
	check(fe, "description", f.Description, "max=1000")
	check(fe, "sku", f.SKU, "notblank,max=255")
	check(fe, "manufacturer", f.Manufacturer, "notblank,max=255")
	check(fe, "quantity", f.Quantity, fmt.Sprintf("gte=0,lte=%d", models.MaxQuantity))
	return fe.OrNil()
}

func check(fe *apperr.FieldError, field string, value any, tag string) {
	err := pkgvalidator.Var(field, value, tag)
	if err == nil {
		return
	}
	var ferr *apperr.FieldError
	if errors.As(err, &ferr) {
		for f, msg := range ferr.Fields {
			fe.Add(f, msg)
		}
		return
	}
	fe.Add(field, err.Error())
}
