// Copyright (c) 2026 Inkshelf. All rights reserved.

package suggest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/core/book"
	"github.com/inkshelf/inkshelf/internal/core/genre"
	"github.com/inkshelf/inkshelf/internal/core/series"
)

type fakeBooks struct{ books []*book.Book }

func (f *fakeBooks) ListAllActive(_ context.Context, _ string) ([]*book.Book, error) {
	return f.books, nil
}

type fakeGenres struct{ genres []*genre.Genre }

func (f *fakeGenres) ListGenres(_ context.Context, _ string) ([]*genre.Genre, error) {
	return f.genres, nil
}

type fakeSeries struct{ series []*series.Series }

func (f *fakeSeries) ListSeries(_ context.Context, _ string) ([]*series.Series, error) {
	return f.series, nil
}

func testService(books []*book.Book, genres []*genre.Genre, userSeries []*series.Series) *Service {
	return NewService(&fakeBooks{books}, &fakeGenres{genres}, &fakeSeries{userSeries},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAuthors_CountsAndFolding(t *testing.T) {
	books := []*book.Book{
		{Author: "Émile Zola"},
		{Author: "emile  zola"}, // same author, different spelling
		{Author: "Terry Pratchett"},
		{Author: ""},
	}
	service := testService(books, nil, nil)

	t.Run("counts_merge_across_spellings", func(t *testing.T) {
		suggestions, err := service.Authors(context.Background(), "u1", "")
		require.NoError(t, err)
		require.Len(t, suggestions, 2)
		assert.Equal(t, "Émile Zola", suggestions[0].Value, "first spelling wins display")
		assert.Equal(t, 2, suggestions[0].Count)
	})

	t.Run("query_matches_diacritic_free", func(t *testing.T) {
		suggestions, err := service.Authors(context.Background(), "u1", "emile")
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "Émile Zola", suggestions[0].Value)
	})

	t.Run("no_match_is_empty_not_error", func(t *testing.T) {
		suggestions, err := service.Authors(context.Background(), "u1", "tolstoy")
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})
}

func TestGenres_RankedByUsage(t *testing.T) {
	genres := []*genre.Genre{
		{ID: "g1", Name: "Fantasy", BookCount: 2},
		{ID: "g2", Name: "Science Fiction", BookCount: 7},
		{ID: "g3", Name: "Fiction", BookCount: 7},
	}
	service := testService(nil, genres, nil)

	suggestions, err := service.Genres(context.Background(), "u1", "fic")
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	// Same count: name tiebreak, folded alphabetical.
	assert.Equal(t, "g3", suggestions[0].ID)
	assert.Equal(t, "g2", suggestions[1].ID)
}

func TestSeries_UsesOwnedCount(t *testing.T) {
	userSeries := []*series.Series{
		{ID: "s1", Name: "Discworld", OwnedCount: 12},
		{ID: "s2", Name: "Earthsea", OwnedCount: 4},
	}
	service := testService(nil, nil, userSeries)

	suggestions, err := service.Series(context.Background(), "u1", "")
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "s1", suggestions[0].ID)
	assert.Equal(t, 12, suggestions[0].Count)
}
