package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisKeyValueStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisKeyValueStore stores values in redis. A zero ttl keeps keys until deleted;
// otherwise every Set refreshes the expiry.
func NewRedisKeyValueStore(rdb *redis.Client, ttl time.Duration) *RedisKeyValueStore {
	return &RedisKeyValueStore{rdb: rdb, ttl: ttl}
}

func (r *RedisKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	v, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, nil
}

func (r *RedisKeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *RedisKeyValueStore) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}
