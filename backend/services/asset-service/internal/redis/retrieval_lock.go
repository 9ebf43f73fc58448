package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RetrievalLock serializes retrieve-and-merge calls per asset. The lock is a
// short-ttl SetNX key so a crashed holder cannot wedge an asset for long.
type RetrievalLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRetrievalLock returns redis-backed lock.
func NewRetrievalLock(client *redis.Client, ttl time.Duration) *RetrievalLock {
	return &RetrievalLock{client: client, ttl: ttl}
}

func (l *RetrievalLock) key(tenantID, assetID string) string {
	return fmt.Sprintf("assets:retrieve:%s:%s", tenantID, assetID)
}

// Acquire takes the lock; false means another retrieval holds it.
func (l *RetrievalLock) Acquire(ctx context.Context, tenantID, assetID string) (bool, error) {
	return l.client.SetNX(ctx, l.key(tenantID, assetID), 1, l.ttl).Result()
}

// Release frees the lock.
func (l *RetrievalLock) Release(ctx context.Context, tenantID, assetID string) error {
	return l.client.Del(ctx, l.key(tenantID, assetID)).Err()
}
