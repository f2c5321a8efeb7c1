package cache

import (
	"context"
	"time"

	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// RedisIdempotencyStore deduplicates provider webhook deliveries. TryLock wins
// the right to record an event; Remember maps the event id to the created
// order so later redeliveries short-circuit via Recall. Keys expire after the
// configured TTL, which must comfortably exceed the provider's redelivery
// window.
type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *RedisIdempotencyStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	return s.rdb.SetNX(ctx, "evt:lock:"+scope+":"+key, "1", s.ttl).Result()
}

// Release drops the lock so a later redelivery may retry, e.g. after a
// storage failure.
func (s *RedisIdempotencyStore) Release(ctx context.Context, scope, key string) error {
	return s.rdb.Del(ctx, "evt:lock:"+scope+":"+key).Err()
}

func (s *RedisIdempotencyStore) Remember(ctx context.Context, scope, key, value string) error {
	return s.rdb.Set(ctx, "evt:done:"+scope+":"+key, value, s.ttl).Err()
}

func (s *RedisIdempotencyStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, "evt:done:"+scope+":"+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	return val, true, err
}

var _ usecase.IdempotencyStore = (*RedisIdempotencyStore)(nil)
