package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter gates repeated attempts against a key. Allow returns false when
// the key has exhausted its window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NewNoop returns a limiter that always allows; used when Redis is absent.
func NewNoop() Limiter {
	return noopLimiter{}
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }

type redisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedis returns a sliding-window limiter backed by a Redis sorted set.
func NewRedis(client *redis.Client, limit int, window time.Duration) Limiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &redisLimiter{client: client, limit: limit, window: window}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now()
	redisKey := "ratelimit:" + key
	windowStart := now.Add(-l.window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, l.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit pipeline: %w", err)
	}

	return zcard.Val() < int64(l.limit), nil
}
