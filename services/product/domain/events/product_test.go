package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/services/product/domain/events"
	"github.com/ghuser/webapp/services/product/domain/models"
)

func sampleProduct() *models.Product {
	created := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	p := models.NewProduct(uuid.MustParse("660e8400-e29b-41d4-a716-446655440000"), models.Fields{
		Name: "Test Widget", Description: "desc", SKU: "TW-1", Manufacturer: "Acme", Quantity: 7,
	}, created)
	p.Apply(p.Fields, created.Add(time.Hour))
	return p
}

func TestProductChangedEvent_RoundTrip(t *testing.T) {
	p := sampleProduct()
	original := events.NewProductChanged(p)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var decoded events.ProductChangedEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	if decoded.EventID != original.EventID {
		t.Errorf("EventID: got %v, want %v", decoded.EventID, original.EventID)
	}
	if decoded.Version != events.ProductVersion {
		t.Errorf("Version: got %d, want %d", decoded.Version, events.ProductVersion)
	}

	got := decoded.Product()
	if got.ID != p.ID || got.OwnerID != p.OwnerID || got.Fields != p.Fields {
		t.Errorf("product mismatch: got %+v, want %+v", got, p)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) || !got.UpdatedAt.Equal(p.UpdatedAt) {
		t.Errorf("timestamps mismatch: got %v/%v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestProductChangedEvent_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(events.NewProductChanged(sampleProduct()))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	for _, field := range []string{"event_id", "version", "product_id", "owner_user_id", "sku", "quantity", "date_added", "date_last_updated", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestNewProductDeleted(t *testing.T) {
	p := sampleProduct()
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	evt := events.NewProductDeleted(p, now)

	if evt.ProductID != p.ID || evt.OwnerID != p.OwnerID || evt.SKU != p.SKU {
		t.Errorf("unexpected event: %+v", evt)
	}
	if !evt.OccurredAt.Equal(now) || evt.EventID == uuid.Nil {
		t.Errorf("unexpected metadata: %+v", evt)
	}
}

func TestTopics(t *testing.T) {
	want := []string{"product.created", "product.updated", "product.deleted"}
	if len(events.Topics) != len(want) {
		t.Fatalf("expected %d topics, got %d", len(want), len(events.Topics))
	}
	for i, topic := range want {
		if events.Topics[i] != topic {
			t.Errorf("topic %d: got %q, want %q", i, events.Topics[i], topic)
		}
	}
}
