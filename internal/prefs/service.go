// Copyright (c) 2026 Inkshelf. All rights reserved.

package prefs

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/inkshelf/inkshelf/internal/platform/validate"
)

type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Get resolves a preference: cache, then postgres, then the built-in
// default. Cache misses are backfilled.
func (service *Service) Get(context context.Context, userID, key string) (*Preference, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	if value, ok, err := service.cache.Get(context, userID, key); err == nil && ok {
		return &Preference{Key: key, Value: value}, nil
	} else if err != nil {
		service.logger.Warn("pref_cache_read_failed", slog.String("error", err.Error()))
	}

	value, err := service.repo.Get(context, userID, key)
	if err != nil {
		return nil, err
	}
	if value == "" {
		value = Default(key)
	}

	if err := service.cache.Set(context, userID, key, value); err != nil {
		service.logger.Warn("pref_cache_fill_failed", slog.String("error", err.Error()))
	}
	return &Preference{Key: key, Value: value}, nil
}

// Set validates and persists a preference, then invalidates its cache
// entry.
func (service *Service) Set(context context.Context, userID, key, value string) (*Preference, error) {
	value = strings.TrimSpace(value)
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := validateValue(key, value); err != nil {
		return nil, err
	}

	if err := service.repo.Set(context, userID, key, value); err != nil {
		return nil, err
	}
	if err := service.cache.Invalidate(context, userID, key); err != nil {
		service.logger.Warn("pref_cache_invalidate_failed", slog.String("error", err.Error()))
	}

	service.logger.Info("preference_updated", slog.String("key", key))
	return &Preference{Key: key, Value: value}, nil
}

func validateKey(key string) error {
	validator := &validate.Validator{}
	validator.OneOf("key", key, Keys()...)
	return validator.Err()
}

func validateValue(key, value string) error {
	validator := &validate.Validator{}
	switch key {
	case KeyTheme:
		validator.OneOf("value", value, ThemeLight, ThemeDark, ThemeSystem)
	case KeyDefaultSort:
		validator.OneOf("value", value, "title", "author", "created_at", "rating")
	case KeyBooksPerPage:
		perPage, err := strconv.Atoi(value)
		validator.Custom("value", err != nil, "must be a number")
		if err == nil {
			validator.Range("value", perPage, 5, 100)
		}
	case KeySyncMetadata, KeyVerifyBannerDismissed:
		validator.OneOf("value", value, "true", "false")
	}
	return validator.Err()
}
