package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStateStore holds short-lived OAuth state tokens. A state is single-use:
// Consume deletes it atomically, so a replayed callback fails the check.
type RedisStateStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStateStore(rdb *redis.Client, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStateStore) Save(ctx context.Context, state string) error {
	return s.rdb.Set(ctx, "oauth:state:"+state, "1", s.ttl).Err()
}

func (s *RedisStateStore) Consume(ctx context.Context, state string) (bool, error) {
	_, err := s.rdb.GetDel(ctx, "oauth:state:"+state).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
