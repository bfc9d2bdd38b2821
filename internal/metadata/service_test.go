// Copyright (c) 2026 Inkshelf. All rights reserved.

package metadata

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
)

type fakeCatalogue struct {
	record  *BookMetadata
	records []*BookMetadata
	calls   int
}

func (f *fakeCatalogue) LookupISBN(_ context.Context, _ string) (*BookMetadata, error) {
	f.calls++
	if f.record == nil {
		return nil, apperr.NotFound("book metadata")
	}
	return f.record, nil
}

func (f *fakeCatalogue) Search(_ context.Context, _ string) ([]*BookMetadata, error) {
	f.calls++
	return f.records, nil
}

type fakeCache struct {
	byISBN  map[string]*BookMetadata
	byQuery map[string][]*BookMetadata
	writes  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{byISBN: map[string]*BookMetadata{}, byQuery: map[string][]*BookMetadata{}}
}

func (f *fakeCache) GetISBN(_ context.Context, isbn string) (*BookMetadata, error) {
	return f.byISBN[isbn], nil
}

func (f *fakeCache) SetISBN(_ context.Context, isbn string, record *BookMetadata) error {
	f.byISBN[isbn] = record
	f.writes++
	return nil
}

func (f *fakeCache) GetSearch(_ context.Context, query string) ([]*BookMetadata, error) {
	return f.byQuery[query], nil
}

func (f *fakeCache) SetSearch(_ context.Context, query string, records []*BookMetadata) error {
	f.byQuery[query] = records
	f.writes++
	return nil
}

func testService(catalogue *fakeCatalogue, cache *fakeCache) *Service {
	return NewService(catalogue, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_LookupISBN(t *testing.T) {
	t.Run("rejects_invalid_isbn", func(t *testing.T) {
		service := testService(&fakeCatalogue{}, newFakeCache())

		_, err := service.LookupISBN(context.Background(), "not-an-isbn")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("normalizes_before_lookup_and_caches", func(t *testing.T) {
		catalogue := &fakeCatalogue{record: &BookMetadata{Title: "Dune", ISBN: "9780306406157"}}
		cache := newFakeCache()
		service := testService(catalogue, cache)

		record, err := service.LookupISBN(context.Background(), " 978-0-306-40615-7 ")
		require.NoError(t, err)
		assert.Equal(t, "Dune", record.Title)
		assert.Equal(t, 1, catalogue.calls)
		assert.NotNil(t, cache.byISBN["9780306406157"])

		// Second lookup is served from cache.
		_, err = service.LookupISBN(context.Background(), "9780306406157")
		require.NoError(t, err)
		assert.Equal(t, 1, catalogue.calls)
	})

	t.Run("miss_propagates_not_found", func(t *testing.T) {
		service := testService(&fakeCatalogue{}, newFakeCache())

		_, err := service.LookupISBN(context.Background(), "9780306406157")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestService_Search(t *testing.T) {
	t.Run("requires_query", func(t *testing.T) {
		service := testService(&fakeCatalogue{}, newFakeCache())

		_, err := service.Search(context.Background(), "   ")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("caches_results", func(t *testing.T) {
		catalogue := &fakeCatalogue{records: []*BookMetadata{{Title: "Dune"}}}
		cache := newFakeCache()
		service := testService(catalogue, cache)

		records, err := service.Search(context.Background(), "dune")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 1, catalogue.calls)

		_, err = service.Search(context.Background(), "dune")
		require.NoError(t, err)
		assert.Equal(t, 1, catalogue.calls)
	})
}
