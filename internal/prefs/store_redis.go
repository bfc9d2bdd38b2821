// Copyright (c) 2026 Inkshelf. All rights reserved.

package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkshelf/inkshelf/internal/platform/constants"
)

const cacheTTL = 12 * time.Hour

// RedisCache implements Cache on a shared Redis client.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func prefKey(userID, key string) string {
	return fmt.Sprintf("%s%s:%s", constants.RedisPrefixPreference, userID, key)
}

func (cache *RedisCache) Get(context context.Context, userID, key string) (string, bool, error) {
	value, err := cache.client.Get(context, prefKey(userID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis_pref_get_failed: %w", err)
	}
	return value, true, nil
}

func (cache *RedisCache) Set(context context.Context, userID, key, value string) error {
	if err := cache.client.Set(context, prefKey(userID, key), value, cacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_pref_set_failed: %w", err)
	}
	return nil
}

func (cache *RedisCache) Invalidate(context context.Context, userID, key string) error {
	if err := cache.client.Del(context, prefKey(userID, key)).Err(); err != nil {
		return fmt.Errorf("redis_pref_del_failed: %w", err)
	}
	return nil
}
