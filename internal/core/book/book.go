// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package book defines the central aggregate of the Inkshelf library domain.

A Book owns its read history, cover sources, gallery images, and genre links.
Reading status is never stored: it is derived on demand from the read history,
so every surface (list, detail, dashboard) shares one definition.

# Soft Delete

Books are never removed by their owner directly. Deletion stamps DeletedAt,
which hides the book from every active-collection query; the bin package owns
the restore/purge side of that lifecycle.
*/
package book

import "time"

// # Enumerations

// PhysicalFormat describes the edition a user owns.
type PhysicalFormat string

const (
	FormatHardcover PhysicalFormat = "hardcover"
	FormatPaperback PhysicalFormat = "paperback"
	FormatEbook     PhysicalFormat = "ebook"
	FormatAudiobook PhysicalFormat = "audiobook"
	FormatOther     PhysicalFormat = "other"
)

// Formats lists every accepted physical format value.
func Formats() []string {
	return []string{
		string(FormatHardcover), string(FormatPaperback), string(FormatEbook),
		string(FormatAudiobook), string(FormatOther),
	}
}

// ReadingStatus is the derived lifecycle position of a book.
type ReadingStatus string

const (
	StatusWantToRead ReadingStatus = "want-to-read"
	StatusReading    ReadingStatus = "reading"
	StatusFinished   ReadingStatus = "finished"
)

// # Domain Entities

// Read is one attempt at reading a book. Position orders attempts; only the
// last entry may be in progress.
type Read struct {
	ID         string     `json:"id"`
	Position   int        `json:"position"`
	StartedAt  *time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

// Image is a gallery photo attached to a book (storage is external; only the
// URL and storage path are recorded).
type Image struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	StoragePath string    `json:"storage_path"`
	IsPrimary   bool      `json:"is_primary"`
	Caption     *string   `json:"caption"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Book is the central aggregate of a user's library.
type Book struct {
	ID             string            `json:"id"`
	UserID         string            `json:"-"`
	Title          string            `json:"title"`
	Author         string            `json:"author"`
	ISBN           *string           `json:"isbn"`
	CoverImageURL  *string           `json:"cover_image_url"`
	Covers         map[string]string `json:"covers"`
	Publisher      *string           `json:"publisher"`
	PublishedDate  *string           `json:"published_date"`
	PhysicalFormat *PhysicalFormat   `json:"physical_format"`
	PageCount      *int              `json:"page_count"`
	Rating         *int              `json:"rating"`
	GenreIDs       []string          `json:"genre_ids"`
	SeriesID       *string           `json:"series_id"`
	SeriesPosition *int              `json:"series_position"`
	Notes          *string           `json:"notes"`
	Images         []Image           `json:"images,omitempty"`
	Reads          []Read            `json:"reads"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      *time.Time        `json:"-"` // soft-delete tracker
}

// # Derived State

// Status derives the reading status from an ordered read history.
//
// Only the last entry matters:
//   - no entries              → want-to-read
//   - started, not finished   → reading
//   - finished                → finished
//
// Total over all inputs; a malformed last entry (neither started nor
// finished) counts as want-to-read.
func Status(reads []Read) ReadingStatus {
	if len(reads) == 0 {
		return StatusWantToRead
	}

	last := reads[len(reads)-1]
	switch {
	case last.FinishedAt != nil:
		return StatusFinished
	case last.StartedAt != nil:
		return StatusReading
	default:
		return StatusWantToRead
	}
}

// Status reports the book's derived reading status.
func (b *Book) Status() ReadingStatus {
	return Status(b.Reads)
}

// CurrentRead returns the in-progress read entry, or nil if none.
func (b *Book) CurrentRead() *Read {
	if len(b.Reads) == 0 {
		return nil
	}
	last := &b.Reads[len(b.Reads)-1]
	if last.StartedAt != nil && last.FinishedAt == nil {
		return last
	}
	return nil
}

// LastFinishedAt returns when the most recent read attempt was finished,
// or nil if the book has never been finished.
func (b *Book) LastFinishedAt() *time.Time {
	for i := len(b.Reads) - 1; i >= 0; i-- {
		if b.Reads[i].FinishedAt != nil {
			return b.Reads[i].FinishedAt
		}
	}
	return nil
}

// # Query Types

// Filter holds the parameters for a library listing.
type Filter struct {
	Status   ReadingStatus // derived-state filter, applied in memory
	GenreID  string
	SeriesID string
	Query    string // substring match against title and author
	Sort     string // one of SortValues
}

// Sort orders accepted by the list endpoint.
const (
	SortTitle     = "title"
	SortAuthor    = "author"
	SortCreatedAt = "created_at"
	SortRating    = "rating"
)

// SortValues lists every accepted sort key.
func SortValues() []string {
	return []string{SortTitle, SortAuthor, SortCreatedAt, SortRating}
}

// # Field Identifiers

// Global field names for validation
const (
	FieldTitle          = "title"
	FieldAuthor         = "author"
	FieldISBN           = "isbn"
	FieldCoverImageURL  = "cover_image_url"
	FieldPublisher      = "publisher"
	FieldPublishedDate  = "published_date"
	FieldPhysicalFormat = "physical_format"
	FieldPageCount      = "page_count"
	FieldRating         = "rating"
	FieldSeriesPosition = "series_position"
	FieldNotes          = "notes"
	FieldSort           = "sort"
)

// # Validation Bounds

const (
	MaxTitleLen  = 500
	MaxAuthorLen = 500
	MaxNotesLen  = 5000
	MinPageCount = 1
	MaxPageCount = 50000
	MinRating    = 0
	MaxRating    = 5
)
