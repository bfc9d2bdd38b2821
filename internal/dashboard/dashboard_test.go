// Copyright (c) 2026 Inkshelf. All rights reserved.

package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/core/book"
	"github.com/inkshelf/inkshelf/internal/core/series"
	"github.com/inkshelf/inkshelf/pkg/pointer"
)

type fakeBooks struct{ books []*book.Book }

func (f *fakeBooks) ListAllActive(_ context.Context, _ string) ([]*book.Book, error) {
	return f.books, nil
}

type fakeSeries struct{ series []*series.Series }

func (f *fakeSeries) ListSeries(_ context.Context, _ string) ([]*series.Series, error) {
	return f.series, nil
}

func testService(books []*book.Book, userSeries []*series.Series) *Service {
	service := NewService(&fakeBooks{books: books}, &fakeSeries{series: userSeries},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	service.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return service
}

func TestBuild_CurrentlyReadingExcludesUnstarted(t *testing.T) {
	started := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	reading := &book.Book{ID: "b1", Title: "Open", Reads: []book.Read{
		{Position: 1, StartedAt: pointer.To(started)},
	}}
	unstarted := &book.Book{ID: "b2", Title: "Shelf"}
	done := &book.Book{ID: "b3", Title: "Done", Reads: []book.Read{
		{Position: 1, StartedAt: pointer.To(started), FinishedAt: pointer.To(started.Add(time.Hour))},
	}}

	view, err := testService([]*book.Book{reading, unstarted, done}, nil).
		Build(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, view.CurrentlyReading, 1)
	assert.Equal(t, "b1", view.CurrentlyReading[0].ID)
	assert.Equal(t, 3, view.TotalBooks)
}

func TestBuild_FinishedSections(t *testing.T) {
	finish := func(id string, at time.Time) *book.Book {
		return &book.Book{ID: id, Reads: []book.Read{
			{Position: 1, StartedAt: pointer.To(at.Add(-time.Hour)), FinishedAt: pointer.To(at)},
		}}
	}

	thisYear := finish("b1", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
	lastYear := finish("b2", time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC))
	recent := finish("b3", time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))

	view, err := testService([]*book.Book{thisYear, lastYear, recent}, nil).
		Build(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 2, view.FinishedThisYear)
	require.Len(t, view.RecentlyFinished, 3)
	assert.Equal(t, "b3", view.RecentlyFinished[0].ID, "newest finish first")
}

func TestBuild_TopRatedCutoff(t *testing.T) {
	rated := func(id string, rating int) *book.Book {
		return &book.Book{ID: id, Rating: &rating}
	}

	view, err := testService([]*book.Book{
		rated("b1", 3), rated("b2", 5), rated("b3", 4), {ID: "b4"},
	}, nil).Build(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, view.TopRated, 2)
	assert.Equal(t, "b2", view.TopRated[0].ID)
	assert.Equal(t, "b3", view.TopRated[1].ID)
}

func TestBuild_BooksBySeries(t *testing.T) {
	sagaID := "s1"
	soloID := "s2"
	userSeries := []*series.Series{
		{ID: sagaID, Name: "Saga", TotalBooks: pointer.To(3)},
		{ID: soloID, Name: "Empty Series"},
	}

	member := func(id string, position *int) *book.Book {
		return &book.Book{ID: id, SeriesID: &sagaID, SeriesPosition: position}
	}
	books := []*book.Book{
		member("b2", pointer.To(2)),
		member("b1", pointer.To(1)),
		{ID: "loose"},
	}

	view, err := testService(books, userSeries).Build(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, view.BooksBySeries, 1, "series without owned books are skipped")
	group := view.BooksBySeries[0]
	assert.Equal(t, "Saga", group.SeriesName)
	require.Len(t, group.Books, 2)
	assert.Equal(t, "b1", group.Books[0].ID)
}

func TestBuild_LibraryHealth(t *testing.T) {
	isbnValue := "9780306406157"
	pages := 200
	complete := &book.Book{
		ID: "b1", ISBN: &isbnValue, PageCount: &pages,
		Covers:   map[string]string{"openlibrary": "https://covers.example/1.jpg"},
		GenreIDs: []string{"g1"},
	}
	bare := &book.Book{ID: "b2"}

	view, err := testService([]*book.Book{complete, bare}, nil).
		Build(context.Background(), "u1")
	require.NoError(t, err)

	health := view.LibraryHealth
	require.NotNil(t, health)
	assert.Len(t, health.MissingISBN, 1)
	assert.Len(t, health.MissingCover, 1)
	assert.Len(t, health.MissingGenres, 1)
	assert.Len(t, health.MissingPageCount, 1)
	assert.Equal(t, "b2", health.MissingISBN[0].ID)
}
