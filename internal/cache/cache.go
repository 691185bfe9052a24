// Package cache - JSON-кэш ответов поверх redis (namespace:key)
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache хранит значения в JSON; Get возвращает false при промахе
type Cache interface {
	Get(ctx context.Context, namespace, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, namespace, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, namespace, key string) error
}

type RedisCache struct {
	client redis.UniversalClient
}

func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func buildKey(namespace, key string) string {
	return "fursa:" + namespace + ":" + key
}

func (c *RedisCache) Get(ctx context.Context, namespace, key string, dst interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, buildKey(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", namespace, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, namespace, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, buildKey(namespace, key), raw, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, namespace, key string) error {
	return c.client.Del(ctx, buildKey(namespace, key)).Err()
}

// NoopCache - redis не настроен, всегда промах
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, string, interface{}) (bool, error) { return false, nil }

func (NoopCache) Set(context.Context, string, string, interface{}, time.Duration) error { return nil }

func (NoopCache) Delete(context.Context, string, string) error { return nil }
