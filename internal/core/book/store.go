// Copyright (c) 2026 Inkshelf. All rights reserved.

package book

import "context"

// Repository persists books with their read history and genre links.
//
// Every method is scoped to a single owner: a userID that does not own the
// row behaves exactly like a missing row.
type Repository interface {
	// ListActive returns all non-deleted books matching the storage-level
	// parts of f (genre, series, text query), hydrated with reads and genre
	// links. Derived-status filtering and ordering happen in the service.
	ListActive(context context.Context, userID string, f Filter) ([]*Book, error)

	// GetBook returns one active book with reads, genre links and images.
	GetBook(context context.Context, userID, id string) (*Book, error)

	CreateBook(context context.Context, b *Book) error
	UpdateBook(context context.Context, b *Book) error

	// SoftDeleteBook stamps deletedat on an active book.
	SoftDeleteBook(context context.Context, userID, id string) error

	// CountActiveInSeries counts the user's non-deleted books in a series.
	CountActiveInSeries(context context.Context, userID, seriesID string) (int, error)

	AppendRead(context context.Context, bookID string, r *Read) error
	UpdateRead(context context.Context, bookID string, r *Read) error
	DeleteRead(context context.Context, bookID, readID string) error
}
