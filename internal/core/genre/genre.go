// Copyright (c) 2026 Inkshelf. All rights reserved.

// Package genre manages a user's genre labels.
//
// Genres carry a denormalized count of the active books linked to them; the
// counter is maintained by every book mutation and by genre deletion, so
// list views never need a join.
package genre

import "time"

// Genre is a user-scoped label with an optional display color.
//
// TextColor is derived from Color at read time (see [ContrastColor]) and
// never stored.
type Genre struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	TextColor *string   `json:"text_color"`
	BookCount int       `json:"book_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Global field names for validation
const (
	FieldName  = "name"
	FieldColor = "color"
)

// MaxNameLen bounds genre names.
const MaxNameLen = 100
