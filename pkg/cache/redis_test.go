package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-valid-url")
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	po := DefaultPoolOptions
	po.DialTimeout = 200 * time.Millisecond
	po.PingTimeout = 500 * time.Millisecond
	po.MaxRetries = -1

	_, err := NewRedisClientWithOptions(context.Background(), "redis://localhost:19999", po)
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

func TestApplyPoolOptions(t *testing.T) {
	tests := []struct {
		name     string
		po       PoolOptions
		wantSize int
		wantRead time.Duration
	}{
		{"defaults", DefaultPoolOptions, 10, time.Second},
		{"zero keeps url settings", PoolOptions{}, 3, 7 * time.Second},
		{"partial override", PoolOptions{PoolSize: 50}, 50, 7 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &redis.Options{PoolSize: 3, ReadTimeout: 7 * time.Second}
			applyPoolOptions(opts, tt.po)
			if opts.PoolSize != tt.wantSize {
				t.Errorf("PoolSize: got %d, want %d", opts.PoolSize, tt.wantSize)
			}
			if opts.ReadTimeout != tt.wantRead {
				t.Errorf("ReadTimeout: got %v, want %v", opts.ReadTimeout, tt.wantRead)
			}
		})
	}
}

func TestClose_NilSafe(t *testing.T) {
	var rc *RedisClient
	if err := rc.Close(); err != nil {
		t.Fatalf("Close on nil client: %v", err)
	}
}

// Integration tests, skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	ctx := context.Background()

	t.Run("Ping", func(t *testing.T) {
		rc, err := NewRedisClient(ctx, redisURL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		if err := rc.Ping(ctx); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
		if rc.Client() == nil {
			t.Fatal("expected non-nil underlying client")
		}
	})

	t.Run("Close", func(t *testing.T) {
		rc, err := NewRedisClient(ctx, redisURL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := rc.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	})
}
