// Copyright (c) 2026 Inkshelf. All rights reserved.

package wishlist

import "context"

// Repository persists wishlist items, scoped to one owner.
type Repository interface {
	ListItems(context context.Context, userID string) ([]*Item, error)
	GetItem(context context.Context, userID, id string) (*Item, error)
	CreateItem(context context.Context, item *Item) error
	UpdateItem(context context.Context, item *Item) error
	DeleteItem(context context.Context, userID, id string) error
}
