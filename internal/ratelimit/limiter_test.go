package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestNoopLimiterAlwaysAllows(t *testing.T) {
	limiter := NewNoop()
	for i := 0; i < 100; i++ {
		allowed, err := limiter.Allow(context.Background(), "any")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestRedisLimiterWindow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedis(client, 5, time.Minute)

	key := "login:ana@titan.com:10.0.0.1"
	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(context.Background(), key)
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, allowed, "6th attempt should be denied")
}

func TestRedisLimiterKeysAreIndependent(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedis(client, 1, time.Minute)

	allowed, err := limiter.Allow(context.Background(), "login:a@titan.com:ip1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(context.Background(), "login:b@titan.com:ip1")
	require.NoError(t, err)
	assert.True(t, allowed, "a fresh key starts its own window")
}
