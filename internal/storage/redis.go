package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "brp:storage:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore keeps each namespace in one Redis hash. A positive ttl is
// refreshed on every write.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (r *redisStore) key(ns string) string {
	return redisKeyPrefix + ns
}

func (r *redisStore) Get(ctx context.Context, ns, key string) (string, bool, error) {
	if ns == "" {
		return "", false, ErrEmptyNamespace
	}
	val, err := r.client.HGet(ctx, r.key(ns), key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *redisStore) GetMany(ctx context.Context, ns string, keys ...string) (map[string]string, error) {
	if ns == "" {
		return nil, ErrEmptyNamespace
	}
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	vals, err := r.client.HMGet(ctx, r.key(ns), keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, val := range vals {
		if s, ok := val.(string); ok {
			out[keys[i]] = s
		}
	}
	return out, nil
}

func (r *redisStore) SetMany(ctx context.Context, ns string, values map[string]string) error {
	return r.Apply(ctx, ns, values, nil)
}

func (r *redisStore) Delete(ctx context.Context, ns string, keys ...string) error {
	return r.Apply(ctx, ns, nil, keys)
}

// Apply runs HSET, HDEL and EXPIRE inside one MULTI/EXEC.
func (r *redisStore) Apply(ctx context.Context, ns string, set map[string]string, del []string) error {
	if ns == "" {
		return ErrEmptyNamespace
	}
	if len(set) == 0 && len(del) == 0 {
		return nil
	}
	key := r.key(ns)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(set) > 0 {
			fields := make(map[string]any, len(set))
			for k, v := range set {
				fields[k] = v
			}
			pipe.HSet(ctx, key, fields)
		}
		if len(del) > 0 {
			pipe.HDel(ctx, key, del...)
		}
		if r.ttl > 0 && len(set) > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	return err
}
