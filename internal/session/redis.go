package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "authd:sess:"

type RedisBackend struct {
	client redis.Cmdable
	prefix string
}

var _ Backend = (*RedisBackend)(nil)

func NewRedisBackend(client redis.Cmdable, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisBackend{client: client, prefix: prefix}
}

func (r *RedisBackend) key(id string) string {
	return r.prefix + id
}

func (r *RedisBackend) Put(ctx context.Context, id string, userID uint, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(id), uint64(userID), ttl).Err()
}

func (r *RedisBackend) Get(ctx context.Context, id string) (uint, error) {
	uid, err := r.client.Get(ctx, r.key(id)).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return uint(uid), nil
}

func (r *RedisBackend) Touch(ctx context.Context, id string, ttl time.Duration) error {
	ok, err := r.client.Expire(ctx, r.key(id), ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}
