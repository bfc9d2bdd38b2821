// Copyright (c) 2026 Inkshelf. All rights reserved.

package series

import "context"

// Repository persists series and their expected volumes. All methods are
// scoped to one owner.
type Repository interface {
	// ListSeries returns all series with expected volumes and the count of
	// active owned books.
	ListSeries(context context.Context, userID string) ([]*Series, error)
	GetSeries(context context.Context, userID, id string) (*Series, error)

	// CreateSeries and UpdateSeries write the series row and replace its
	// expected volumes in one transaction.
	CreateSeries(context context.Context, s *Series) error
	UpdateSeries(context context.Context, s *Series) error

	// DeleteSeries removes the series and its expected volumes and clears
	// the series link on every book that referenced it, active or binned.
	DeleteSeries(context context.Context, userID, id string) error
}
