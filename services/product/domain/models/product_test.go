package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func sampleFields() Fields {
	return Fields{Name: "Widget", Description: "A widget", SKU: "W-1", Manufacturer: "Acme", Quantity: 3}
}

func TestNewProduct(t *testing.T) {
	owner := uuid.New()
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	p := NewProduct(owner, sampleFields(), now)

	if p.ID == uuid.Nil {
		t.Fatal("expected generated ID")
	}
	if p.OwnerID != owner {
		t.Errorf("expected owner %s, got %s", owner, p.OwnerID)
	}
	if !p.CreatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
		t.Errorf("expected both timestamps %v, got %v / %v", now, p.CreatedAt, p.UpdatedAt)
	}
	if p.Fields != sampleFields() {
		t.Errorf("fields not stored: %+v", p.Fields)
	}
}

func TestApply(t *testing.T) {
	owner := uuid.New()
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	p := NewProduct(owner, sampleFields(), created)
	id := p.ID

	t.Run("replaces every field", func(t *testing.T) {
		next := Fields{Name: "Gadget", SKU: "G-1", Manufacturer: "Globex", Quantity: 0}
		later := created.Add(time.Minute)
		p.Apply(next, later)

		if p.Fields != next {
			t.Errorf("expected %+v, got %+v", next, p.Fields)
		}
		if p.Description != "" {
			t.Error("omitted description must be cleared by a full replace")
		}
		if !p.UpdatedAt.Equal(later) {
			t.Errorf("expected updatedAt %v, got %v", later, p.UpdatedAt)
		}
		if p.ID != id || p.OwnerID != owner || !p.CreatedAt.Equal(created) {
			t.Error("identity fields must not change")
		}
	})

	t.Run("never moves updatedAt backwards", func(t *testing.T) {
		before := p.UpdatedAt
		p.Apply(sampleFields(), created.Add(-time.Hour))
		if want := before.Add(time.Microsecond); !p.UpdatedAt.Equal(want) {
			t.Errorf("updatedAt: got %v, want %v", p.UpdatedAt, want)
		}
	})

	t.Run("same clock still advances updatedAt", func(t *testing.T) {
		before := p.UpdatedAt
		p.Apply(sampleFields(), before)
		if !p.UpdatedAt.After(before) {
			t.Errorf("updatedAt did not advance: %v -> %v", before, p.UpdatedAt)
		}
	})
}
