package cache

import (
	"context"
	"time"
)

// Store is a small TTL'd key-value facade over Redis. The auth service
// uses it to track live refresh-token ids so tokens can be rotated and
// revoked.
type Store interface {
	Get(ctx context.Context, key string) (val string, hit bool, err error)
	Set(ctx context.Context, key, val string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
