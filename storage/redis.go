package storage

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"no-regret/errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares snapshots between processes through a Redis instance.
// Keys are namespaced so several demos can use the same database.
type RedisStore struct {
	rdb       *redis.Client
	log       *slog.Logger
	namespace string
}

func NewRedisStore(rdb *redis.Client, log *slog.Logger, namespace string) *RedisStore {
	return &RedisStore{rdb: rdb, log: log, namespace: namespace}
}

func (r *RedisStore) key(key string) string {
	if r.namespace == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", r.namespace, key)
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if stdErrors.Is(err, redis.Nil) {
		return nil, errors.ErrKeyNotFound
	}
	if err != nil {
		r.log.Error("Failed to read snapshot from Redis", "key", key, "error", err)
		return nil, err
	}
	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.key(key)).Err()
}
