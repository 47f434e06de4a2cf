package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss reports that no entry exists for the key. It is distinct from
// transport errors so callers can tell a miss from a broken cache.
var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, orderID string) ([]byte, error)
	Set(ctx context.Context, orderID string, snapshot []byte, ttl time.Duration) error
	Delete(ctx context.Context, orderID string) error
}

var _ Cache = (*OrderCache)(nil)

// OrderCache stores serialized order snapshots under "order:<id>".
type OrderCache struct {
	rdb *redis.Client
}

func NewOrderCache(rdb *redis.Client) *OrderCache {
	return &OrderCache{rdb: rdb}
}

func cacheKey(orderID string) string {
	return "order:" + orderID
}

func (c *OrderCache) Get(ctx context.Context, orderID string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, cacheKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *OrderCache) Set(ctx context.Context, orderID string, snapshot []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, cacheKey(orderID), snapshot, ttl).Err()
}

func (c *OrderCache) Delete(ctx context.Context, orderID string) error {
	return c.rdb.Del(ctx, cacheKey(orderID)).Err()
}
