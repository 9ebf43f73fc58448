package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLock(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RetrievalLock) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, NewRetrievalLock(client, ttl)
}

func TestRetrievalLockSerializesPerAsset(t *testing.T) {
	_, lock := setupLock(t, time.Minute)
	ctx := context.Background()

	acquired, err := lock.Acquire(ctx, "t1", "A1")
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = lock.Acquire(ctx, "t1", "A1")
	require.NoError(t, err)
	assert.False(t, acquired, "second acquire for the same asset must fail")

	// A different asset is independent.
	acquired, err = lock.Acquire(ctx, "t1", "A2")
	require.NoError(t, err)
	assert.True(t, acquired)

	require.NoError(t, lock.Release(ctx, "t1", "A1"))
	acquired, err = lock.Acquire(ctx, "t1", "A1")
	require.NoError(t, err)
	assert.True(t, acquired, "released lock can be re-acquired")
}

func TestRetrievalLockExpires(t *testing.T) {
	srv, lock := setupLock(t, time.Second)
	ctx := context.Background()

	acquired, err := lock.Acquire(ctx, "t1", "A1")
	require.NoError(t, err)
	require.True(t, acquired)

	srv.FastForward(2 * time.Second)

	acquired, err = lock.Acquire(ctx, "t1", "A1")
	require.NoError(t, err)
	assert.True(t, acquired, "a crashed holder must not wedge the asset")
}
