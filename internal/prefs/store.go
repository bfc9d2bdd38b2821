// Copyright (c) 2026 Inkshelf. All rights reserved.

package prefs

import "context"

// Repository persists preference values.
type Repository interface {
	// Get returns the stored value, or "" when the key was never set.
	Get(context context.Context, userID, key string) (string, error)
	Set(context context.Context, userID, key, value string) error
}

// Cache fronts the repository per (user, key).
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(context context.Context, userID, key string) (string, bool, error)
	Set(context context.Context, userID, key, value string) error
	Invalidate(context context.Context, userID, key string) error
}
