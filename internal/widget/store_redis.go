// Copyright (c) 2026 Inkshelf. All rights reserved.

package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkshelf/inkshelf/internal/platform/constants"
)

// cacheTTL bounds staleness if an invalidation is ever lost.
const cacheTTL = 12 * time.Hour

// RedisCache implements Cache on a shared Redis client.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func layoutKey(userID string) string {
	return fmt.Sprintf("%s%s", constants.RedisPrefixWidgets, userID)
}

func (cache *RedisCache) Get(context context.Context, userID string) ([]Config, error) {
	payload, err := cache.client.Get(context, layoutKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis_widget_get_failed: %w", err)
	}

	var configs []Config
	if err := json.Unmarshal(payload, &configs); err != nil {
		// A corrupt entry behaves like a miss; the next Set repairs it.
		return nil, nil
	}
	return configs, nil
}

func (cache *RedisCache) Set(context context.Context, userID string, configs []Config) error {
	payload, err := json.Marshal(configs)
	if err != nil {
		return fmt.Errorf("redis_widget_marshal_failed: %w", err)
	}
	if err := cache.client.Set(context, layoutKey(userID), payload, cacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_widget_set_failed: %w", err)
	}
	return nil
}

func (cache *RedisCache) Invalidate(context context.Context, userID string) error {
	if err := cache.client.Del(context, layoutKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis_widget_del_failed: %w", err)
	}
	return nil
}
