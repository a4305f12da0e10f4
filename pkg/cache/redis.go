// Package cache holds the Redis-backed read models. A cache miss is always
// reported as redis.Nil so callers can fall back to the primary store.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PoolOptions tunes the connection pool layered over the URL settings.
type PoolOptions struct {
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PingTimeout  time.Duration
}

// DefaultPoolOptions is sized for one API or worker process.
var DefaultPoolOptions = PoolOptions{
	PoolSize:     10,
	MinIdleConns: 2,
	MaxRetries:   3,
	DialTimeout:  5 * time.Second,
	ReadTimeout:  time.Second,
	WriteTimeout: time.Second,
	PingTimeout:  2 * time.Second,
}

// RedisClient owns the go-redis pool shared by the product cache and the
// health check.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to url using DefaultPoolOptions.
func NewRedisClient(ctx context.Context, url string) (*RedisClient, error) {
	return NewRedisClientWithOptions(ctx, url, DefaultPoolOptions)
}

// NewRedisClientWithOptions parses url, applies po and verifies connectivity.
func NewRedisClientWithOptions(ctx context.Context, url string, po PoolOptions) (*RedisClient, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	applyPoolOptions(opts, po)
	if po.PingTimeout <= 0 {
		po.PingTimeout = DefaultPoolOptions.PingTimeout
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, po.PingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}

	return &RedisClient{client: rdb}, nil
}

// applyPoolOptions overrides only the non-zero fields of po.
func applyPoolOptions(opts *redis.Options, po PoolOptions) {
	if po.PoolSize > 0 {
		opts.PoolSize = po.PoolSize
	}
	if po.MinIdleConns > 0 {
		opts.MinIdleConns = po.MinIdleConns
	}
	if po.MaxRetries != 0 {
		opts.MaxRetries = po.MaxRetries
	}
	if po.DialTimeout > 0 {
		opts.DialTimeout = po.DialTimeout
	}
	if po.ReadTimeout > 0 {
		opts.ReadTimeout = po.ReadTimeout
	}
	if po.WriteTimeout > 0 {
		opts.WriteTimeout = po.WriteTimeout
	}
}

// Ping satisfies httpx.HealthChecker.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the pool. Safe on a zero RedisClient.
func (r *RedisClient) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the go-redis client to the cache adapters.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
