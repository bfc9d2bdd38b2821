// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package series manages book series and their expected volumes.

A series groups the user's books through the book's seriesid/seriesposition
fields; the series itself also carries an optional list of expected volumes
(title, ISBN, position) so the user can track gaps in a collection they are
still completing.

Deleting a series never deletes books: their series link is cleared instead.
*/
package series

import "time"

// Expected is a volume the user expects a series to contain, whether or not
// they own it yet.
type Expected struct {
	ID       string  `json:"id"`
	SeriesID string  `json:"-"`
	Title    string  `json:"title"`
	ISBN     *string `json:"isbn"`
	Position *int    `json:"position"`
}

// Series is a user-scoped grouping of books.
type Series struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	TotalBooks  *int       `json:"total_books"`
	Expected    []Expected `json:"expected"`
	OwnedCount  int        `json:"owned_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldTotalBooks  = "total_books"
	FieldExpected    = "expected"
)

const (
	MaxNameLen        = 200
	MaxDescriptionLen = 2000
	MaxTotalBooks     = 1000
)
