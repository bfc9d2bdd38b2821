// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package bin implements the soft-delete recycle bin for books.

Deleted books sit in the bin for a retention window (30 days) during which
they can be restored with their full read history. A nightly sweeper purges
entries whose window has lapsed; purging is the only hard delete in the
system.
*/
package bin

import (
	"time"

	"github.com/inkshelf/inkshelf/internal/core/book"
	"github.com/inkshelf/inkshelf/internal/platform/constants"
)

// BinnedBook is a soft-deleted book plus its countdown to permanent
// removal.
type BinnedBook struct {
	book.Book
	DeletedAt     time.Time `json:"deleted_at"`
	DaysRemaining int       `json:"days_remaining"`
}

// DaysRemaining reports how many whole days are left before a book deleted
// at deletedAt is purged. Partial days round up; lapsed entries report 0.
func DaysRemaining(deletedAt, now time.Time) int {
	expiry := deletedAt.Add(constants.BinRetention)
	remaining := expiry.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
	return days
}
