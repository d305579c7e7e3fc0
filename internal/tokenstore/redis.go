package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 3 * time.Second

// RedisStore keeps tokens in redis so several processes can share a session
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a token store using rdb; keys are prefix+access_token
// and prefix+refresh_token
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: rdb, prefix: prefix}
}

func (r *RedisStore) key(name string) string {
	return r.prefix + name
}

func (r *RedisStore) get(name string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (r *RedisStore) GetAccessToken() (string, error) {
	return r.get(AccessTokenKey)
}

func (r *RedisStore) GetRefreshToken() (string, error) {
	return r.get(RefreshTokenKey)
}

func (r *RedisStore) SetAccessToken(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return r.client.Set(ctx, r.key(AccessTokenKey), token, 0).Err()
}

// SetSession writes both tokens in one transaction
func (r *RedisStore) SetSession(access, refresh string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(AccessTokenKey), access, 0)
		pipe.Set(ctx, r.key(RefreshTokenKey), refresh, 0)
		return nil
	})
	return err
}

func (r *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return r.client.Del(ctx, r.key(AccessTokenKey), r.key(RefreshTokenKey)).Err()
}

// Close releases the redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}
