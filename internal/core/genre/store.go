// Copyright (c) 2026 Inkshelf. All rights reserved.

package genre

import "context"

// Repository persists genres. All methods are scoped to one owner.
type Repository interface {
	ListGenres(context context.Context, userID string) ([]*Genre, error)
	GetGenre(context context.Context, userID, id string) (*Genre, error)
	CreateGenre(context context.Context, g *Genre) error
	UpdateGenre(context context.Context, g *Genre) error

	// DeleteGenre removes the genre and its book links in one transaction.
	DeleteGenre(context context.Context, userID, id string) error
}
