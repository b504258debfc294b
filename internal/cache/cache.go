// Package cache is a small JSON-over-Redis cache for single entities.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNilClient is returned when the cache was built without a Redis client.
var ErrNilClient = errors.New("redis client is nil")

// Cache stores values of T under "<prefix>:<field>" keys.
type Cache[T any] struct {
	rc     redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// New builds a cache; ttl 0 keeps entries until deleted.
func New[T any](rc redis.UniversalClient, prefix string, ttl time.Duration) *Cache[T] {
	return &Cache[T]{rc: rc, prefix: prefix, ttl: ttl}
}

// Key returns the Redis key for field.
func (c *Cache[T]) Key(field string) string {
	if c.prefix == "" {
		return field
	}
	return fmt.Sprintf("%s:%s", c.prefix, field)
}

// Get returns (nil, nil) on a cache miss.
func (c *Cache[T]) Get(ctx context.Context, field string) (*T, error) {
	if c.rc == nil {
		return nil, ErrNilClient
	}
	raw, err := c.rc.Get(ctx, c.Key(field)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &v, nil
}

func (c *Cache[T]) Set(ctx context.Context, field string, v *T) error {
	if c.rc == nil {
		return ErrNilClient
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := c.rc.Set(ctx, c.Key(field), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Add stores v only when field is absent and reports whether it was written (Redis SET NX).
func (c *Cache[T]) Add(ctx context.Context, field string, v *T) (bool, error) {
	if c.rc == nil {
		return false, ErrNilClient
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("failed to marshal data: %w", err)
	}
	ok, err := c.rc.SetNX(ctx, c.Key(field), b, c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to add cache: %w", err)
	}
	return ok, nil
}

func (c *Cache[T]) Delete(ctx context.Context, field string) error {
	if c.rc == nil {
		return ErrNilClient
	}
	if err := c.rc.Del(ctx, c.Key(field)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Ping lets the cache double as a readiness probe.
func (c *Cache[T]) Ping(ctx context.Context) error {
	if c.rc == nil {
		return ErrNilClient
	}
	return c.rc.Ping(ctx).Err()
}
