// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package suggest produces typeahead candidates for the book form.

Candidates come from the user's own collection — the authors they already
shelve, the genres and series they created — ranked by how often each is
used. Matching folds case, diacritics and whitespace, so "emile zola" finds
"Émile  Zola". Free-text values that match nothing remain perfectly legal on
the write paths; suggestions only save typing.
*/
package suggest

import (
	"context"
	"log/slog"
	"sort"

	"github.com/inkshelf/inkshelf/internal/core/book"
	"github.com/inkshelf/inkshelf/internal/core/genre"
	"github.com/inkshelf/inkshelf/internal/core/series"
	"github.com/inkshelf/inkshelf/pkg/normalize"
	"github.com/inkshelf/inkshelf/pkg/slice"
)

const maxSuggestions = 15

// Suggestion is one candidate with its usage count. ID is empty for
// free-text candidates (authors) and set for entity-backed ones.
type Suggestion struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// BookSource supplies the active library. Satisfied by the book service.
type BookSource interface {
	ListAllActive(context context.Context, userID string) ([]*book.Book, error)
}

// GenreSource supplies the user's genre labels.
type GenreSource interface {
	ListGenres(context context.Context, userID string) ([]*genre.Genre, error)
}

// SeriesSource supplies the user's series.
type SeriesSource interface {
	ListSeries(context context.Context, userID string) ([]*series.Series, error)
}

type Service struct {
	books  BookSource
	genres GenreSource
	series SeriesSource
	logger *slog.Logger
}

func NewService(books BookSource, genres GenreSource, series SeriesSource, logger *slog.Logger) *Service {
	return &Service{
		books:  books,
		genres: genres,
		series: series,
		logger: logger,
	}
}

// Authors suggests author names from the active collection.
func (service *Service) Authors(context context.Context, userID, query string) ([]Suggestion, error) {
	all, err := service.books.ListAllActive(context, userID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	display := make(map[string]string)
	for _, b := range all {
		folded := normalize.Fold(b.Author)
		if folded == "" {
			continue
		}
		counts[folded]++
		// First spelling seen wins as the display form.
		if _, ok := display[folded]; !ok {
			display[folded] = b.Author
		}
	}

	candidates := make([]Suggestion, 0, len(counts))
	for folded, count := range counts {
		candidates = append(candidates, Suggestion{Value: display[folded], Count: count})
	}
	return filterAndRank(candidates, query), nil
}

// Genres suggests the user's genre labels with their active-book counts.
func (service *Service) Genres(context context.Context, userID, query string) ([]Suggestion, error) {
	genres, err := service.genres.ListGenres(context, userID)
	if err != nil {
		return nil, err
	}

	candidates := slice.Map(genres, func(g *genre.Genre) Suggestion {
		return Suggestion{ID: g.ID, Value: g.Name, Count: g.BookCount}
	})
	return filterAndRank(candidates, query), nil
}

// Series suggests the user's series with their owned-book counts.
func (service *Service) Series(context context.Context, userID, query string) ([]Suggestion, error) {
	all, err := service.series.ListSeries(context, userID)
	if err != nil {
		return nil, err
	}

	candidates := slice.Map(all, func(s *series.Series) Suggestion {
		return Suggestion{ID: s.ID, Value: s.Name, Count: s.OwnedCount}
	})
	return filterAndRank(candidates, query), nil
}

// filterAndRank keeps candidates matching the folded query, most used
// first, name as tiebreak.
func filterAndRank(candidates []Suggestion, query string) []Suggestion {
	matched := slice.Filter(candidates, func(c Suggestion) bool {
		return normalize.Match(c.Value, query)
	})
	if matched == nil {
		matched = []Suggestion{} // encode as [] rather than null
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Count != matched[j].Count {
			return matched[i].Count > matched[j].Count
		}
		return normalize.Fold(matched[i].Value) < normalize.Fold(matched[j].Value)
	})

	if len(matched) > maxSuggestions {
		matched = matched[:maxSuggestions]
	}
	return matched
}
