// Copyright (c) 2026 Inkshelf. All rights reserved.

package widget

import "context"

// Repository persists widget layouts.
type Repository interface {
	// GetLayout returns the stored layout, or nil when the user has never
	// saved one.
	GetLayout(context context.Context, userID string) ([]Config, error)

	// SaveLayout replaces the user's layout atomically.
	SaveLayout(context context.Context, userID string, configs []Config) error
}

// Cache is the fast-path layout store in front of the repository.
type Cache interface {
	// Get returns the cached layout, or nil on a miss.
	Get(context context.Context, userID string) ([]Config, error)
	Set(context context.Context, userID string, configs []Config) error
	Invalidate(context context.Context, userID string) error
}
