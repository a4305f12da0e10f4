package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ghuser/webapp/pkg/apperr"
)

func TestSentinelErrors_WrapTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"not found", ErrProductNotFound, apperr.ErrNotFound},
		{"sku taken", ErrSKUTaken, apperr.ErrConflict},
		{"negative quantity", ErrNegativeQuantity, apperr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("%v must match %v", tt.err, tt.kind)
			}
			if !errors.Is(fmt.Errorf("update product: %w", tt.err), tt.err) {
				t.Error("wrapped error must still match its sentinel")
			}
		})
	}
}

func TestNegativeQuantity_CarriesField(t *testing.T) {
	var fe *apperr.FieldError
	if !errors.As(ErrNegativeQuantity, &fe) {
		t.Fatal("expected *apperr.FieldError")
	}
	if _, ok := fe.Fields["quantity"]; !ok {
		t.Errorf("expected quantity field, got %v", fe.Fields)
	}
}
