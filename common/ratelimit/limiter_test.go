package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickengine/publisher/common/logger"
)

func newTestLimiter(t *testing.T) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewLimiter(client, logger.New("error", "text")), mr
}

func TestSourceLimitAllowsUnderQuota(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.CheckSourceLimit(ctx, "10.0.0.1", 3, 60)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, int64(i+1), result.CurrentCount)
	}
}

func TestSourceLimitBlocksOverQuota(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := limiter.CheckSourceLimit(ctx, "10.0.0.1", 2, 60)
		require.NoError(t, err)
	}

	result, err := limiter.CheckSourceLimit(ctx, "10.0.0.1", 2, 60)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, int64(3), result.CurrentCount)
	assert.Positive(t, result.RetryAfterSeconds)
}

func TestSourceLimitIsolatesSources(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	_, err := limiter.CheckSourceLimit(ctx, "10.0.0.1", 1, 60)
	require.NoError(t, err)

	result, err := limiter.CheckSourceLimit(ctx, "10.0.0.2", 1, 60)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestWindowExpiryResetsCounter(t *testing.T) {
	limiter, mr := newTestLimiter(t)
	ctx := context.Background()

	_, err := limiter.CheckGlobalPublishLimit(ctx, 1, 60)
	require.NoError(t, err)

	blocked, err := limiter.CheckGlobalPublishLimit(ctx, 1, 60)
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	mr.FastForward(61 * time.Second)

	result, err := limiter.CheckGlobalPublishLimit(ctx, 1, 60)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, int64(1), result.CurrentCount)
}
