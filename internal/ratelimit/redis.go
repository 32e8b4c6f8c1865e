package ratelimit

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStore counts requests in Redis so the limit holds across instances.
// INCR on a key with a window-long TTL gives atomic increment-and-check
// without a round trip per field.
type RedisStore struct {
	client *goredis.Client
}

// NewRedisStore wraps an already-connected client.
func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Check(ctx context.Context, identifier string) (Result, error) {
	key := keyPrefix + identifier

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, err
	}

	count := incr.Val()

	// First hit in a window, or a key left without expiry by a crashed
	// EXPIRE, starts a fresh window.
	remainingTTL := ttl.Val()
	if count == 1 || remainingTTL < 0 {
		remainingTTL = Window
		if err := s.client.PExpire(ctx, key, Window).Err(); err != nil {
			return Result{}, err
		}
	}

	reset := time.Now().Add(remainingTTL).Unix()

	remaining := Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= Limit,
		Remaining: remaining,
		Reset:     reset,
		Source:    SourceDistributed,
	}, nil
}
