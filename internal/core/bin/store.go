// Copyright (c) 2026 Inkshelf. All rights reserved.

package bin

import (
	"context"
	"time"
)

// Repository owns the binned half of the book lifecycle.
type Repository interface {
	// ListBinned returns the user's soft-deleted books, newest deletion
	// first, hydrated with reads and genre links.
	ListBinned(context context.Context, userID string) ([]*BinnedBook, error)

	// Restore clears the deletion stamp and restores genre counts.
	Restore(context context.Context, userID, id string) error

	// Purge permanently removes one binned book and its dependents.
	Purge(context context.Context, userID, id string) error

	// PurgeAll empties the user's bin, returning the number removed.
	PurgeAll(context context.Context, userID string) (int, error)

	// PurgeExpired removes every book, any owner, deleted before cutoff.
	// Used by the retention sweeper.
	PurgeExpired(context context.Context, cutoff time.Time) (int, error)
}
