// Package throttle enforces a minimum interval between repeated operations
// on the same key, backed by redis so the window survives restarts and is
// shared across replicas.
package throttle

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttle gates an operation per key.
type Throttle interface {
	// Acquire reserves the key for the given window. It returns false when
	// the key is still inside a previously acquired window.
	Acquire(ctx context.Context, key string, window time.Duration) (bool, error)
	// Release frees the key before its window elapses, used when the gated
	// operation failed and the caller may retry immediately.
	Release(ctx context.Context, key string) error
}

// RedisThrottle implements Throttle with SETNX and key expiry. The SETNX is
// the single serialization point; two concurrent acquires for the same key
// cannot both succeed.
type RedisThrottle struct {
	client *redis.Client
	prefix string
}

// New returns a RedisThrottle using the given client.
func New(client *redis.Client) *RedisThrottle {
	return &RedisThrottle{
		client: client,
		prefix: "throttle:",
	}
}

// Acquire reserves the key for the window.
func (t *RedisThrottle) Acquire(ctx context.Context, key string, window time.Duration) (bool, error) {
	return t.client.SetNX(ctx, t.prefix+key, time.Now().Unix(), window).Result()
}

// Release frees the key.
func (t *RedisThrottle) Release(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.prefix+key).Err()
}
