// Copyright (c) 2026 Inkshelf. All rights reserved.

package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkshelf/inkshelf/internal/platform/constants"
	"github.com/inkshelf/inkshelf/pkg/normalize"
)

// cacheTTL keeps catalogue answers for a day; editions rarely change.
const cacheTTL = 24 * time.Hour

// RedisCache stores lookup results keyed by ISBN or folded search query.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func isbnKey(isbn string) string {
	return fmt.Sprintf("%sisbn:%s", constants.RedisPrefixMetadata, isbn)
}

func searchKey(query string) string {
	return fmt.Sprintf("%ssearch:%s", constants.RedisPrefixMetadata, normalize.Fold(query))
}

func (cache *RedisCache) GetISBN(context context.Context, isbn string) (*BookMetadata, error) {
	var record BookMetadata
	ok, err := cache.get(context, isbnKey(isbn), &record)
	if err != nil || !ok {
		return nil, err
	}
	return &record, nil
}

func (cache *RedisCache) SetISBN(context context.Context, isbn string, record *BookMetadata) error {
	return cache.set(context, isbnKey(isbn), record)
}

func (cache *RedisCache) GetSearch(context context.Context, query string) ([]*BookMetadata, error) {
	var records []*BookMetadata
	ok, err := cache.get(context, searchKey(query), &records)
	if err != nil || !ok {
		return nil, err
	}
	return records, nil
}

func (cache *RedisCache) SetSearch(context context.Context, query string, records []*BookMetadata) error {
	return cache.set(context, searchKey(query), records)
}

func (cache *RedisCache) get(context context.Context, key string, target any) (bool, error) {
	payload, err := cache.client.Get(context, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis_metadata_get_failed: %w", err)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return false, nil // treat corrupt entries as misses
	}
	return true, nil
}

func (cache *RedisCache) set(context context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis_metadata_marshal_failed: %w", err)
	}
	if err := cache.client.Set(context, key, payload, cacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_metadata_set_failed: %w", err)
	}
	return nil
}
