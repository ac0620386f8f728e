package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisBackend stores a scope under "<prefix><scope>:" keys.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend connects to addr. An empty prefix defaults to "mpp:".
func NewRedisBackend(addr, password string, db int, prefix string, scope Scope) (*RedisBackend, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis address is empty")
	}
	if prefix == "" {
		prefix = "mpp:"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisBackend{
		client: client,
		prefix: RedisKeyPrefix(prefix, scope),
	}, nil
}

// RedisKeyPrefix returns the namespace a scope's keys live under.
func RedisKeyPrefix(prefix string, scope Scope) string {
	return prefix + string(scope) + ":"
}

func (b *RedisBackend) Get(key string) ([]byte, bool, error) {
	value, err := b.client.Get(context.Background(), b.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "redis get %q", key)
	}
	return value, true, nil
}

func (b *RedisBackend) Set(key string, value []byte) error {
	err := b.client.Set(context.Background(), b.prefix+key, value, 0).Err()
	return errors.Wrapf(err, "redis set %q", key)
}

func (b *RedisBackend) Remove(key string) error {
	err := b.client.Del(context.Background(), b.prefix+key).Err()
	return errors.Wrapf(err, "redis del %q", key)
}

func (b *RedisBackend) Clear() error {
	ctx := context.Background()
	keys, err := b.scan(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = b.prefix + k
	}
	return errors.Wrap(b.client.Del(ctx, full...).Err(), "redis del")
}

func (b *RedisBackend) Keys() ([]string, error) {
	keys, err := b.scan(context.Background())
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

// scan returns the scope's keys with the prefix stripped.
func (b *RedisBackend) scan(ctx context.Context) ([]string, error) {
	var keys []string
	iter := b.client.Scan(ctx, 0, b.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), b.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "redis scan")
	}
	return keys, nil
}
