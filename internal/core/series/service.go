// Copyright (c) 2026 Inkshelf. All rights reserved.

package series

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/inkshelf/inkshelf/internal/core/book"
	"github.com/inkshelf/inkshelf/internal/platform/validate"
	"github.com/inkshelf/inkshelf/pkg/isbn"
	uuid "github.com/inkshelf/inkshelf/pkg/uuidv7"
)

// BookSource supplies the user's active library for the books-in-series
// view. Satisfied by the book service.
type BookSource interface {
	ListAllActive(context context.Context, userID string) ([]*book.Book, error)
}

type Service struct {
	repo   Repository
	books  BookSource
	logger *slog.Logger
}

func NewService(repo Repository, books BookSource, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
	}
}

func (service *Service) ListSeries(context context.Context, userID string) ([]*Series, error) {
	return service.repo.ListSeries(context, userID)
}

func (service *Service) GetSeries(context context.Context, userID, id string) (*Series, error) {
	return service.repo.GetSeries(context, userID, id)
}

// ListSeriesBooks returns the user's active books in a series, ordered by
// their position (unplaced books last, then by title).
func (service *Service) ListSeriesBooks(context context.Context, userID, id string) ([]*book.Book, error) {
	if _, err := service.repo.GetSeries(context, userID, id); err != nil {
		return nil, err
	}

	all, err := service.books.ListAllActive(context, userID)
	if err != nil {
		return nil, err
	}

	members := make([]*book.Book, 0)
	for _, b := range all {
		if b.SeriesID != nil && *b.SeriesID == id {
			members = append(members, b)
		}
	}

	sort.SliceStable(members, func(i, j int) bool {
		pi, pj := members[i].SeriesPosition, members[j].SeriesPosition
		switch {
		case pi != nil && pj != nil && *pi != *pj:
			return *pi < *pj
		case pi != nil && pj == nil:
			return true
		case pi == nil && pj != nil:
			return false
		default:
			return strings.ToLower(members[i].Title) < strings.ToLower(members[j].Title)
		}
	})
	return members, nil
}

func (service *Service) CreateSeries(context context.Context, userID string, s *Series) error {
	if err := normalizeAndValidate(s); err != nil {
		return err
	}

	s.ID = uuid.Must()
	s.UserID = userID

	if err := service.repo.CreateSeries(context, s); err != nil {
		return err
	}

	service.logger.Info("series_created", slog.String("name", s.Name))
	return nil
}

// UpdateSeries applies a partial update: only the supplied fields change,
// and the merged series is validated as a whole before it is written back.
// A supplied expected list replaces the stored one entirely.
func (service *Service) UpdateSeries(context context.Context, userID, id string, p *Patch) (*Series, error) {
	s, err := service.repo.GetSeries(context, userID, id)
	if err != nil {
		return nil, err
	}

	p.apply(s)
	if err := normalizeAndValidate(s); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateSeries(context, s); err != nil {
		return nil, err
	}

	service.logger.Info("series_updated", slog.String("series_id", id))
	return s, nil
}

// DeleteSeries removes the series; member books only lose their link.
func (service *Service) DeleteSeries(context context.Context, userID, id string) error {
	if err := service.repo.DeleteSeries(context, userID, id); err != nil {
		return err
	}

	service.logger.Info("series_deleted", slog.String("series_id", id))
	return nil
}

func normalizeAndValidate(s *Series) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Description != nil {
		trimmed := strings.TrimSpace(*s.Description)
		if trimmed == "" {
			s.Description = nil
		} else {
			s.Description = &trimmed
		}
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, s.Name).MaxLen(FieldName, s.Name, MaxNameLen)
	if s.Description != nil {
		validator.MaxLen(FieldDescription, *s.Description, MaxDescriptionLen)
	}
	if s.TotalBooks != nil {
		validator.Range(FieldTotalBooks, *s.TotalBooks, 1, MaxTotalBooks)
	}

	for i := range s.Expected {
		entry := &s.Expected[i]
		entry.Title = strings.TrimSpace(entry.Title)
		validator.Required(FieldExpected, entry.Title)

		if entry.ISBN != nil {
			normalized := isbn.Normalize(*entry.ISBN)
			if normalized == "" {
				entry.ISBN = nil
			} else {
				entry.ISBN = &normalized
				validator.ISBN(FieldExpected, normalized)
			}
		}
		if entry.Position != nil {
			validator.Custom(FieldExpected, *entry.Position < 1, "position must be at least 1")
		}
	}

	return validator.Err()
}
