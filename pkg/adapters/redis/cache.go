package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danilucaci/stylemap/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Cache implements ports.ValueCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for cached values.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached values.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: "stylemap:value:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *Cache) key(lookupKey string) string {
	return c.prefix + lookupKey
}

func (c *Cache) indexKey() string {
	return c.prefix + "index"
}

// entry wraps the cached value so nil and absent are distinguishable and
// the concrete type survives the round trip where JSON allows.
type entry struct {
	Value any `json:"v"`
}

// Get retrieves a cached value. Returns ports.ErrCacheMiss if absent.
func (c *Cache) Get(ctx context.Context, lookupKey string) (any, error) {
	raw, err := c.client.Get(ctx, c.key(lookupKey)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, ports.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return e.Value, nil
}

// Set stores a resolved value with the configured TTL.
func (c *Cache) Set(ctx context.Context, lookupKey string, value any) error {
	data, err := json.Marshal(entry{Value: value})
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.key(lookupKey), data, c.ttl)
	// Track the key so Flush can clear exactly what this cache owns.
	pipe.SAdd(ctx, c.indexKey(), lookupKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Delete removes a single entry.
func (c *Cache) Delete(ctx context.Context, lookupKey string) error {
	pipe := c.client.Pipeline()
	pipe.Del(ctx, c.key(lookupKey))
	pipe.SRem(ctx, c.indexKey(), lookupKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Flush removes every entry owned by this cache.
func (c *Cache) Flush(ctx context.Context) error {
	members, err := c.client.SMembers(ctx, c.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to list cache index: %w", err)
	}

	pipe := c.client.Pipeline()
	for _, member := range members {
		pipe.Del(ctx, c.key(member))
	}
	pipe.Del(ctx, c.indexKey())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to flush redis cache: %w", err)
	}
	return nil
}
