package redis

import (
	"context"
	"time"
)

// RateLimiter counts calls in fixed windows via INCR+EXPIRE. Unlike the
// in-memory sliding window it survives restarts and is shared across
// replicas.
type RateLimiter struct {
	client RedisClient
	key    string
	limit  int
	window time.Duration
}

func NewRateLimiter(client RedisClient, key string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, key: key, limit: limit, window: window}
}

func (r *RateLimiter) Allow(ctx context.Context) (bool, error) {
	count, err := r.client.Incr(ctx, r.key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, r.key, r.window); err != nil {
			return false, err
		}
	}
	return count <= int64(r.limit), nil
}
