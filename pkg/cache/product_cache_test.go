package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func sampleProduct() *CachedProduct {
	now := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	return &CachedProduct{
		ID:              uuid.New(),
		Name:            "Widget",
		Description:     "",
		SKU:             "W-1",
		Manufacturer:    "Acme",
		Quantity:        0,
		OwnerID:         uuid.New(),
		DateAdded:       now,
		DateLastUpdated: now.Add(time.Minute),
	}
}

func TestEncodeDecodeProduct(t *testing.T) {
	p := sampleProduct()

	got, err := decodeProduct(encodeProduct(p))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *got != *p {
		t.Fatalf("got %+v, want %+v", got, p)
	}
}

func TestHashArgs(t *testing.T) {
	args := hashArgs(encodeProduct(sampleProduct()))
	if len(args) != 18 {
		t.Fatalf("expected 9 field/value pairs, got %d args", len(args))
	}
	for i := 0; i < len(args); i += 2 {
		if _, ok := args[i].(string); !ok {
			t.Fatalf("arg %d is not a field name: %v", i, args[i])
		}
	}
}

func TestDecodeProduct_Corrupt(t *testing.T) {
	vals := encodeProduct(sampleProduct())

	for _, field := range []string{"id", "owner_user_id", "quantity", "date_added", "date_last_updated"} {
		t.Run(field, func(t *testing.T) {
			broken := make(map[string]string, len(vals))
			for k, v := range vals {
				broken[k] = v
			}
			broken[field] = "garbage"
			if _, err := decodeProduct(broken); err == nil {
				t.Fatalf("expected error for corrupt %s", field)
			}
		})
	}
}

func TestAcceptsWrite(t *testing.T) {
	p := sampleProduct()
	stored := encodeProduct(p)
	corrupt := encodeProduct(p)
	corrupt["date_last_updated"] = "garbage"

	tests := []struct {
		name    string
		current map[string]string
		updated time.Time
		want    bool
	}{
		{"empty", nil, p.DateLastUpdated, true},
		{"newer", stored, p.DateLastUpdated.Add(time.Microsecond), true},
		{"same version", stored, p.DateLastUpdated, true},
		{"older", stored, p.DateLastUpdated.Add(-time.Microsecond), false},
		{"tombstone", map[string]string{tombstoneField: "1"}, p.DateLastUpdated.Add(time.Hour), false},
		{"unreadable", corrupt, p.DateAdded, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := acceptsWrite(tt.current, tt.updated); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// exerciseStore checks the ordering and tombstone rules every ProductStore
// must follow.
func exerciseStore(t *testing.T, store ProductStore) {
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		if _, err := store.Get(ctx, uuid.New()); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil, got %v", err)
		}
	})

	t.Run("late older write is dropped", func(t *testing.T) {
		v1 := sampleProduct()
		v2 := *v1
		v2.Quantity = 7
		v2.DateLastUpdated = v1.DateLastUpdated.Add(time.Second)

		if err := store.Set(ctx, &v2); err != nil {
			t.Fatalf("Set v2: %v", err)
		}
		if err := store.Set(ctx, v1); err != nil {
			t.Fatalf("Set v1: %v", err)
		}
		got, err := store.Get(ctx, v1.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Quantity != 7 {
			t.Errorf("stale write replaced newer entry: %+v", got)
		}
	})

	t.Run("tombstone blocks later writes", func(t *testing.T) {
		p := sampleProduct()
		if err := store.Set(ctx, p); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := store.MarkDeleted(ctx, p.ID); err != nil {
			t.Fatalf("MarkDeleted: %v", err)
		}
		late := *p
		late.DateLastUpdated = p.DateLastUpdated.Add(time.Hour)
		if err := store.Set(ctx, &late); err != nil {
			t.Fatalf("Set after delete: %v", err)
		}
		if _, err := store.Get(ctx, p.ID); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil for deleted product, got %v", err)
		}
	})
}

func TestMemoryProductCache(t *testing.T) {
	exerciseStore(t, NewMemoryProductCache())
}

// Integration test, skipped unless REDIS_URL is set.
func TestProductCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(context.Background(), redisURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	exerciseStore(t, NewProductCache(rc))
}
