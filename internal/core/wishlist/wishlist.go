// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package wishlist tracks books the user wants but does not own.

Items can be promoted into the library with the purchase operation: the book
is created first, then the wishlist entry is removed. The removal is
best-effort; a failure there leaves a duplicate wish, never a lost book.
*/
package wishlist

import "time"

// Priority levels. The zero value (no priority) sorts last.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank maps priorities to sort order; unknown/unset ranks last.
func rank(p *Priority) int {
	if p == nil {
		return 3
	}
	switch *p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Item is one wished-for book. The metadata fields mirror the book entity
// so a purchase can carry them straight into the library.
type Item struct {
	ID            string            `json:"id"`
	UserID        string            `json:"-"`
	Title         string            `json:"title"`
	Author        string            `json:"author"`
	ISBN          *string           `json:"isbn"`
	CoverImageURL *string           `json:"cover_image_url"`
	Covers        map[string]string `json:"covers"`
	Publisher     *string           `json:"publisher"`
	PublishedDate *string           `json:"published_date"`
	PageCount     *int              `json:"page_count"`
	Priority      *Priority         `json:"priority"`
	Notes         *string           `json:"notes"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Global field names for validation
const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldISBN          = "isbn"
	FieldCoverImageURL = "cover_image_url"
	FieldPriority      = "priority"
	FieldNotes         = "notes"
)

const (
	MaxTitleLen  = 500
	MaxAuthorLen = 500
	MaxNotesLen  = 5000
)
