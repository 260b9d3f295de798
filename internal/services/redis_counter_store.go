package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounterStore implements domain.CounterStore on Redis, sharing counter
// state across instances. The key TTL doubles as the fixed window: the first
// increment creates the key with the window as expiry, later increments ride
// on it, and expiry resets the count.
type RedisCounterStore struct {
	client *redis.Client
	prefix string
}

// NewRedisCounterStore creates a Redis-backed counter store
func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{
		client: client,
		prefix: "ratelimit:",
	}
}

// Incr implements domain.CounterStore. INCR is atomic server-side, so
// concurrent callers never lose an update.
func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := s.prefix + key

	count, err := s.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, fmt.Errorf("ratelimit: incr failed: %w", err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return 0, fmt.Errorf("ratelimit: expire failed: %w", err)
		}
	}

	return count, nil
}
