// Copyright (c) 2026 Inkshelf. All rights reserved.

package book

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
	"github.com/inkshelf/inkshelf/internal/platform/validate"
	"github.com/inkshelf/inkshelf/pkg/isbn"
	uuid "github.com/inkshelf/inkshelf/pkg/uuidv7"
)

// SeriesDeleter removes a series once its last book is gone. Implemented by
// the series service; declared here to keep the dependency one-directional.
type SeriesDeleter interface {
	DeleteSeries(context context.Context, userID, seriesID string) error
}

type Service struct {
	repo          Repository
	seriesDeleter SeriesDeleter
	logger        *slog.Logger
}

func NewService(repo Repository, seriesDeleter SeriesDeleter, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		seriesDeleter: seriesDeleter,
		logger:        logger,
	}
}

// SetSeriesDeleter injects the series cleanup dependency after construction.
// The series service consumes this service as its book source, so one side
// of the pair has to be wired late.
func (service *Service) SetSeriesDeleter(seriesDeleter SeriesDeleter) {
	service.seriesDeleter = seriesDeleter
}

// DeleteResult reports the two phases of a book deletion: the soft delete
// itself (which either succeeded or the call errored) and the optional
// series cleanup, which is best-effort.
type DeleteResult struct {
	BookID        string  `json:"book_id"`
	SeriesDeleted bool    `json:"series_deleted"`
	SeriesError   *string `json:"series_error,omitempty"`
}

// # Listing

// ListBooks returns one page of the user's active library.
//
// Storage narrows by genre, series and text query; the derived-status
// filter, ordering and pagination run in memory over the fetched set. A
// personal library is small enough that this keeps the status logic in one
// place instead of duplicating it in SQL.
func (service *Service) ListBooks(context context.Context, userID string, filter Filter, limit, offset int) ([]*Book, int, error) {
	validator := &validate.Validator{}
	if filter.Sort != "" {
		validator.OneOf(FieldSort, filter.Sort, SortValues()...)
	}
	if filter.Status != "" {
		validator.OneOf("status", string(filter.Status),
			string(StatusWantToRead), string(StatusReading), string(StatusFinished))
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	books, err := service.repo.ListActive(context, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	if filter.Status != "" {
		filtered := books[:0]
		for _, b := range books {
			if b.Status() == filter.Status {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}

	sortBooks(books, filter.Sort)

	total := len(books)
	if offset >= total {
		return []*Book{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return books[offset:end], total, nil
}

// ListAllActive returns the user's entire active library, hydrated with
// reads and genre links. Used by the dashboard and suggestion surfaces.
func (service *Service) ListAllActive(context context.Context, userID string) ([]*Book, error) {
	return service.repo.ListActive(context, userID, Filter{})
}

func (service *Service) GetBook(context context.Context, userID, id string) (*Book, error) {
	return service.repo.GetBook(context, userID, id)
}

// # Mutations

func (service *Service) CreateBook(context context.Context, userID string, b *Book) error {
	normalizeBook(b)
	if err := validateBook(b); err != nil {
		return err
	}

	b.ID = uuid.Must()
	b.UserID = userID
	b.Reads = nil

	if err := service.repo.CreateBook(context, b); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.String("book_id", b.ID), slog.String("title", b.Title))
	return nil
}

// UpdateBook applies a partial update: only the supplied fields change,
// and the merged record is validated as a whole before it is written back.
func (service *Service) UpdateBook(context context.Context, userID, id string, p *Patch) (*Book, error) {
	b, err := service.repo.GetBook(context, userID, id)
	if err != nil {
		return nil, err
	}

	p.apply(b)
	normalizeBook(b)
	if err := validateBook(b); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateBook(context, b); err != nil {
		return nil, err
	}

	service.logger.Info("book_updated", slog.String("book_id", id))
	return b, nil
}

// DeleteBook soft-deletes a book. When deleteSeries is set and the book was
// the last active member of its series, the series itself is removed as a
// second, best-effort phase: a failure there is reported in the result, not
// as an error, because the deletion already happened.
func (service *Service) DeleteBook(context context.Context, userID, id string, deleteSeries bool) (*DeleteResult, error) {
	b, err := service.repo.GetBook(context, userID, id)
	if err != nil {
		return nil, err
	}

	if err := service.repo.SoftDeleteBook(context, userID, id); err != nil {
		return nil, err
	}
	service.logger.Info("book_deleted", slog.String("book_id", id))

	result := &DeleteResult{BookID: id}
	if !deleteSeries || b.SeriesID == nil || service.seriesDeleter == nil {
		return result, nil
	}

	remaining, err := service.repo.CountActiveInSeries(context, userID, *b.SeriesID)
	if err == nil && remaining == 0 {
		err = service.seriesDeleter.DeleteSeries(context, userID, *b.SeriesID)
		result.SeriesDeleted = err == nil
	}
	if err != nil {
		message := err.Error()
		result.SeriesError = &message
		service.logger.Warn("series_cleanup_failed",
			slog.String("series_id", *b.SeriesID), slog.String("error", message))
	}
	return result, nil
}

// # Read Lifecycle

// StartRead appends a new in-progress entry to the read history. It rejects
// when an entry is already in progress.
func (service *Service) StartRead(context context.Context, userID, bookID string) (*Book, error) {
	b, err := service.repo.GetBook(context, userID, bookID)
	if err != nil {
		return nil, err
	}
	if b.CurrentRead() != nil {
		return nil, apperr.Conflict("a read is already in progress for this book")
	}

	now := time.Now()
	read := &Read{
		ID:        uuid.Must(),
		Position:  len(b.Reads) + 1,
		StartedAt: &now,
	}
	if err := service.repo.AppendRead(context, bookID, read); err != nil {
		return nil, err
	}

	b.Reads = append(b.Reads, *read)
	service.logger.Info("read_started", slog.String("book_id", bookID))
	return b, nil
}

// FinishRead stamps the in-progress entry as finished. It rejects when no
// read is in progress.
func (service *Service) FinishRead(context context.Context, userID, bookID string) (*Book, error) {
	b, err := service.repo.GetBook(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	current := b.CurrentRead()
	if current == nil {
		return nil, apperr.Conflict("no read in progress for this book")
	}

	now := time.Now()
	current.FinishedAt = &now
	if err := service.repo.UpdateRead(context, bookID, current); err != nil {
		return nil, err
	}

	service.logger.Info("read_finished", slog.String("book_id", bookID))
	return b, nil
}

// DeleteRead removes one history entry, e.g. a mistaken "started reading".
func (service *Service) DeleteRead(context context.Context, userID, bookID, readID string) (*Book, error) {
	if _, err := service.repo.GetBook(context, userID, bookID); err != nil {
		return nil, err
	}
	if err := service.repo.DeleteRead(context, bookID, readID); err != nil {
		return nil, err
	}
	return service.repo.GetBook(context, userID, bookID)
}

// # Helpers

// normalizeBook trims text fields, blanks empty optionals to nil and
// canonicalizes the ISBN before validation.
func normalizeBook(b *Book) {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)

	b.ISBN = trimOptional(b.ISBN)
	if b.ISBN != nil {
		normalized := isbn.Normalize(*b.ISBN)
		b.ISBN = &normalized
	}

	b.CoverImageURL = trimOptional(b.CoverImageURL)
	b.Publisher = trimOptional(b.Publisher)
	b.PublishedDate = trimOptional(b.PublishedDate)
	b.Notes = trimOptional(b.Notes)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateBook(b *Book) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, b.Title).MaxLen(FieldTitle, b.Title, MaxTitleLen)
	validator.Required(FieldAuthor, b.Author).MaxLen(FieldAuthor, b.Author, MaxAuthorLen)

	if b.ISBN != nil {
		validator.ISBN(FieldISBN, *b.ISBN)
	}
	if b.CoverImageURL != nil {
		validator.URL(FieldCoverImageURL, *b.CoverImageURL)
	}
	if b.PhysicalFormat != nil {
		validator.OneOf(FieldPhysicalFormat, string(*b.PhysicalFormat), Formats()...)
	}
	if b.PageCount != nil {
		validator.Range(FieldPageCount, *b.PageCount, MinPageCount, MaxPageCount)
	}
	if b.Rating != nil {
		validator.Range(FieldRating, *b.Rating, MinRating, MaxRating)
	}
	if b.SeriesPosition != nil {
		validator.Custom(FieldSeriesPosition, *b.SeriesPosition < 0, "must not be negative")
	}
	if b.SeriesID == nil && b.SeriesPosition != nil {
		validator.Custom(FieldSeriesPosition, true, "requires a series")
	}
	if b.Notes != nil {
		validator.MaxLen(FieldNotes, *b.Notes, MaxNotesLen)
	}
	for _, genreID := range b.GenreIDs {
		validator.UUID("genre_ids", genreID)
	}
	if b.SeriesID != nil {
		validator.UUID("series_id", *b.SeriesID)
	}

	return validator.Err()
}

// sortBooks orders in place. Ties keep the storage order (createdat desc),
// so sorting is stable from the caller's point of view.
func sortBooks(books []*Book, key string) {
	switch key {
	case SortTitle:
		sort.SliceStable(books, func(i, j int) bool {
			return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
		})
	case SortAuthor:
		sort.SliceStable(books, func(i, j int) bool {
			return strings.ToLower(books[i].Author) < strings.ToLower(books[j].Author)
		})
	case SortRating:
		// Rated books first, highest rating first; unrated sink to the end.
		sort.SliceStable(books, func(i, j int) bool {
			ri, rj := books[i].Rating, books[j].Rating
			switch {
			case ri == nil:
				return false
			case rj == nil:
				return true
			default:
				return *ri > *rj
			}
		})
	default:
		// SortCreatedAt and the empty default keep the storage order.
	}
}
