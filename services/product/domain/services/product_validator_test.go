package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/ghuser/webapp/pkg/apperr"
	"github.com/ghuser/webapp/services/product/domain/models"
)

func valid() models.Fields {
	return models.Fields{Name: "Widget", SKU: "W-1", Manufacturer: "Acme", Quantity: 0}
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Fields)
		field  string
	}{
		{"valid", func(*models.Fields) {}, ""},
		{"blank name", func(f *models.Fields) { f.Name = "  " }, "name"},
		{"long name", func(f *models.Fields) { f.Name = strings.Repeat("n", 256) }, "name"},
		{"missing sku", func(f *models.Fields) { f.SKU = "" }, "sku"},
		{"missing manufacturer", func(f *models.Fields) { f.Manufacturer = "" }, "manufacturer"},
		{"long description", func(f *models.Fields) { f.Description = strings.Repeat("d", 1001) }, "description"},
		{"max description", func(f *models.Fields) { f.Description = strings.Repeat("d", 1000) }, ""},
		{"negative quantity", func(f *models.Fields) { f.Quantity = -1 }, "quantity"},
		{"max quantity", func(f *models.Fields) { f.Quantity = models.MaxQuantity }, ""},
		{"quantity above int32", func(f *models.Fields) { f.Quantity = models.MaxQuantity + 1 }, "quantity"},
		{"quantity wrapping to small int32", func(f *models.Fields) { f.Quantity = 1<<32 + 5 }, "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(&f)
			err := ValidateFields(f)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			var fe *apperr.FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected field error, got %v", err)
			}
			if len(fe.Fields) != 1 {
				t.Errorf("expected only %q, got %v", tt.field, fe.Fields)
			}
			if _, ok := fe.Fields[tt.field]; !ok {
				t.Errorf("expected %q in %v", tt.field, fe.Fields)
			}
		})
	}
}

func TestValidateFields_ReportsEveryField(t *testing.T) {
	err := ValidateFields(models.Fields{Quantity: -5})
	var fe *apperr.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected field error, got %v", err)
	}
	for _, f := range []string{"name", "sku", "manufacturer", "quantity"} {
		if _, ok := fe.Fields[f]; !ok {
			t.Errorf("expected %q in %v", f, fe.Fields)
		}
	}
	if fe.Fields["quantity"] != "Must be greater than or equal to 0" {
		t.Errorf("unexpected quantity message %q", fe.Fields["quantity"])
	}
}

func TestValidateFields_QuantityUpperBoundMessage(t *testing.T) {
	f := valid()
	f.Quantity = models.MaxQuantity + 1
	var fe *apperr.FieldError
	if !errors.As(ValidateFields(f), &fe) {
		t.Fatal("expected field error")
	}
	if got := fe.Fields["quantity"]; got != "Must be less than or equal to 2147483647" {
		t.Errorf("unexpected quantity message %q", got)
	}
}
