package ratelimit

import (
	"context"
	"time"
)

type counterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// RedisLimiter shares the rate-limit budget across instances through a
// fixed-window Redis counter: the first hit sets the TTL, every hit
// increments, and the count resets only when the key expires. This is an
// approximation of the memory limiter's sliding window that trades edge
// precision for a single round trip per check.
type RedisLimiter struct {
	store counterStore
}

// NewRedisLimiter wraps the provided counter store.
func NewRedisLimiter(store counterStore) *RedisLimiter {
	return &RedisLimiter{store: store}
}

// IsLimited increments the windowed counter for key and reports whether the
// budget is exhausted.
func (l *RedisLimiter) IsLimited(ctx context.Context, key string, maxHits int, window time.Duration) (bool, error) {
	if maxHits <= 0 || window <= 0 {
		return false, nil
	}
	count, err := l.store.IncrWithTTL(ctx, l.store.RateLimitKey(key), window)
	if err != nil {
		return false, err
	}
	return count > int64(maxHits), nil
}
