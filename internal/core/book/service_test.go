// Copyright (c) 2026 Inkshelf. All rights reserved.

package book

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
	"github.com/inkshelf/inkshelf/pkg/pointer"
)

// fakeRepository keeps books in memory, scoped by owner like the real store.
type fakeRepository struct {
	books map[string]*Book

	appendErr error
}

func newFakeRepository(books ...*Book) *fakeRepository {
	repo := &fakeRepository{books: map[string]*Book{}}
	for _, b := range books {
		repo.books[b.ID] = b
	}
	return repo
}

func (f *fakeRepository) ListActive(_ context.Context, userID string, _ Filter) ([]*Book, error) {
	var out []*Book
	for _, b := range f.books {
		if b.UserID == userID && b.DeletedAt == nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetBook(_ context.Context, userID, id string) (*Book, error) {
	b, ok := f.books[id]
	if !ok || b.UserID != userID || b.DeletedAt != nil {
		return nil, apperr.NotFound("book")
	}
	clone := *b
	clone.Reads = append([]Read(nil), b.Reads...)
	return &clone, nil
}

func (f *fakeRepository) CreateBook(_ context.Context, b *Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeRepository) UpdateBook(_ context.Context, b *Book) error {
	existing, ok := f.books[b.ID]
	if !ok || existing.UserID != b.UserID || existing.DeletedAt != nil {
		return apperr.NotFound("book")
	}
	b.Reads = existing.Reads
	f.books[b.ID] = b
	return nil
}

func (f *fakeRepository) SoftDeleteBook(_ context.Context, userID, id string) error {
	b, ok := f.books[id]
	if !ok || b.UserID != userID || b.DeletedAt != nil {
		return apperr.NotFound("book")
	}
	now := time.Now()
	b.DeletedAt = &now
	return nil
}

func (f *fakeRepository) CountActiveInSeries(_ context.Context, userID, seriesID string) (int, error) {
	count := 0
	for _, b := range f.books {
		if b.UserID == userID && b.DeletedAt == nil && b.SeriesID != nil && *b.SeriesID == seriesID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) AppendRead(_ context.Context, bookID string, r *Read) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.books[bookID].Reads = append(f.books[bookID].Reads, *r)
	return nil
}

func (f *fakeRepository) UpdateRead(_ context.Context, bookID string, r *Read) error {
	reads := f.books[bookID].Reads
	for i := range reads {
		if reads[i].ID == r.ID {
			reads[i] = *r
			return nil
		}
	}
	return apperr.NotFound("read")
}

func (f *fakeRepository) DeleteRead(_ context.Context, bookID, readID string) error {
	b := f.books[bookID]
	for i := range b.Reads {
		if b.Reads[i].ID == readID {
			b.Reads = append(b.Reads[:i], b.Reads[i+1:]...)
			for j := range b.Reads {
				b.Reads[j].Position = j + 1
			}
			return nil
		}
	}
	return apperr.NotFound("read")
}

type fakeSeriesDeleter struct {
	deleted []string
	err     error
}

func (f *fakeSeriesDeleter) DeleteSeries(_ context.Context, _, seriesID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, seriesID)
	return nil
}

func testService(repo Repository, deleter SeriesDeleter) *Service {
	return NewService(repo, deleter, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const ownerID = "0195a000-0000-7000-8000-000000000001"

func activeBook(id, title string) *Book {
	return &Book{ID: id, UserID: ownerID, Title: title, Author: "A. Author"}
}

func TestService_CreateBook_Validation(t *testing.T) {
	service := testService(newFakeRepository(), nil)

	longTitle := make([]byte, MaxTitleLen+1)
	for i := range longTitle {
		longTitle[i] = 'x'
	}
	badRating := 6
	badPages := 0

	tests := []struct {
		name string
		book Book
	}{
		{"missing_title", Book{Author: "A"}},
		{"missing_author", Book{Title: "T"}},
		{"title_too_long", Book{Title: string(longTitle), Author: "A"}},
		{"rating_out_of_range", Book{Title: "T", Author: "A", Rating: &badRating}},
		{"page_count_too_low", Book{Title: "T", Author: "A", PageCount: &badPages}},
		{"bad_isbn", Book{Title: "T", Author: "A", ISBN: pointer.To("not-an-isbn")}},
		{"series_position_without_series", Book{Title: "T", Author: "A", SeriesPosition: pointer.To(2)}},
		{"negative_series_position", Book{Title: "T", Author: "A",
			SeriesID: pointer.To("0195a000-0000-7000-8000-0000000000aa"), SeriesPosition: pointer.To(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreateBook(context.Background(), ownerID, &tt.book)
			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		})
	}
}

func TestService_CreateBook_NormalizesISBN(t *testing.T) {
	repo := newFakeRepository()
	service := testService(repo, nil)

	b := Book{Title: "The Checklist", Author: "A. Gawande", ISBN: pointer.To(" 978-0-306-40615-7 ")}
	require.NoError(t, service.CreateBook(context.Background(), ownerID, &b))

	require.NotNil(t, b.ISBN)
	assert.Equal(t, "9780306406157", *b.ISBN)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, ownerID, b.UserID)
}

// A miskeyed check digit must not block a catalogue entry; acceptance is
// structural (length and charset), not arithmetic.
func TestService_CreateBook_AcceptsMiskeyedCheckDigit(t *testing.T) {
	service := testService(newFakeRepository(), nil)

	b := Book{Title: "Draft Entry", Author: "A. Author", ISBN: pointer.To("978-0-12-345678-9")}
	require.NoError(t, service.CreateBook(context.Background(), ownerID, &b))

	require.NotNil(t, b.ISBN)
	assert.Equal(t, "9780123456789", *b.ISBN)
}

func TestService_UpdateBook_Partial(t *testing.T) {
	newStored := func() *Book {
		b := activeBook("b1", "The Dispossessed")
		b.Author = "Ursula K. Le Guin"
		b.ISBN = pointer.To("9780061054884")
		b.PageCount = pointer.To(387)
		b.Publisher = pointer.To("Harper & Row")
		return b
	}

	decode := func(t *testing.T, body string) *Patch {
		t.Helper()
		var p Patch
		require.NoError(t, json.Unmarshal([]byte(body), &p))
		return &p
	}

	t.Run("single_field_leaves_the_rest", func(t *testing.T) {
		repo := newFakeRepository(newStored())
		service := testService(repo, nil)

		updated, err := service.UpdateBook(context.Background(), ownerID, "b1", decode(t, `{"rating": 5}`))
		require.NoError(t, err)
		require.NotNil(t, updated.Rating)
		assert.Equal(t, 5, *updated.Rating)
		assert.Equal(t, "The Dispossessed", updated.Title)
		assert.Equal(t, "9780061054884", *updated.ISBN)
		assert.Equal(t, 387, *updated.PageCount)
		assert.Equal(t, "Harper & Row", *updated.Publisher)
	})

	t.Run("explicit_null_clears_optional_field", func(t *testing.T) {
		repo := newFakeRepository(newStored())
		service := testService(repo, nil)

		updated, err := service.UpdateBook(context.Background(), ownerID, "b1", decode(t, `{"isbn": null}`))
		require.NoError(t, err)
		assert.Nil(t, updated.ISBN)
		assert.Equal(t, "The Dispossessed", updated.Title)
	})

	t.Run("supplied_fields_still_validated", func(t *testing.T) {
		service := testService(newFakeRepository(newStored()), nil)

		_, err := service.UpdateBook(context.Background(), ownerID, "b1", decode(t, `{"rating": 9}`))
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("null_title_fails_required", func(t *testing.T) {
		service := testService(newFakeRepository(newStored()), nil)

		_, err := service.UpdateBook(context.Background(), ownerID, "b1", decode(t, `{"title": null}`))
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("missing_book", func(t *testing.T) {
		service := testService(newFakeRepository(), nil)

		_, err := service.UpdateBook(context.Background(), ownerID, "missing", decode(t, `{"rating": 5}`))
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestService_ListBooks_StatusFilterAndPagination(t *testing.T) {
	now := time.Now()
	reading := activeBook("b1", "Alpha")
	reading.Reads = []Read{{ID: "r1", Position: 1, StartedAt: &now}}
	finished := activeBook("b2", "Beta")
	finished.Reads = []Read{{ID: "r2", Position: 1, StartedAt: &now, FinishedAt: &now}}
	unread := activeBook("b3", "Gamma")

	service := testService(newFakeRepository(reading, finished, unread), nil)

	books, total, err := service.ListBooks(context.Background(), ownerID,
		Filter{Status: StatusReading}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, books, 1)
	assert.Equal(t, "b1", books[0].ID)

	// Pagination slices the filtered, sorted set.
	books, total, err = service.ListBooks(context.Background(), ownerID,
		Filter{Sort: SortTitle}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, books, 1)
	assert.Equal(t, "Gamma", books[0].Title)

	// Offset past the end yields an empty page, not an error.
	books, total, err = service.ListBooks(context.Background(), ownerID, Filter{}, 20, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, books)
}

func TestService_ListBooks_RejectsUnknownSort(t *testing.T) {
	service := testService(newFakeRepository(), nil)

	_, _, err := service.ListBooks(context.Background(), ownerID, Filter{Sort: "isbn"}, 20, 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_StartRead(t *testing.T) {
	t.Run("appends_open_entry", func(t *testing.T) {
		repo := newFakeRepository(activeBook("b1", "Alpha"))
		service := testService(repo, nil)

		b, err := service.StartRead(context.Background(), ownerID, "b1")
		require.NoError(t, err)
		assert.Equal(t, StatusReading, b.Status())
		require.Len(t, repo.books["b1"].Reads, 1)
		assert.Equal(t, 1, repo.books["b1"].Reads[0].Position)
	})

	t.Run("rejects_when_in_progress", func(t *testing.T) {
		now := time.Now()
		b := activeBook("b1", "Alpha")
		b.Reads = []Read{{ID: "r1", Position: 1, StartedAt: &now}}
		service := testService(newFakeRepository(b), nil)

		_, err := service.StartRead(context.Background(), ownerID, "b1")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("reread_after_finish", func(t *testing.T) {
		now := time.Now()
		b := activeBook("b1", "Alpha")
		b.Reads = []Read{{ID: "r1", Position: 1, StartedAt: &now, FinishedAt: &now}}
		repo := newFakeRepository(b)
		service := testService(repo, nil)

		updated, err := service.StartRead(context.Background(), ownerID, "b1")
		require.NoError(t, err)
		assert.Equal(t, StatusReading, updated.Status())
		assert.Equal(t, 2, repo.books["b1"].Reads[1].Position)
	})
}

func TestService_FinishRead(t *testing.T) {
	t.Run("stamps_current_entry", func(t *testing.T) {
		now := time.Now()
		b := activeBook("b1", "Alpha")
		b.Reads = []Read{{ID: "r1", Position: 1, StartedAt: &now}}
		repo := newFakeRepository(b)
		service := testService(repo, nil)

		updated, err := service.FinishRead(context.Background(), ownerID, "b1")
		require.NoError(t, err)
		assert.Equal(t, StatusFinished, updated.Status())
		assert.NotNil(t, repo.books["b1"].Reads[0].FinishedAt)
	})

	t.Run("rejects_without_open_entry", func(t *testing.T) {
		service := testService(newFakeRepository(activeBook("b1", "Alpha")), nil)

		_, err := service.FinishRead(context.Background(), ownerID, "b1")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

func TestService_DeleteBook_SeriesCascade(t *testing.T) {
	seriesID := "0195a000-0000-7000-8000-00000000aaaa"

	t.Run("deletes_empty_series_when_requested", func(t *testing.T) {
		b := activeBook("b1", "Alpha")
		b.SeriesID = &seriesID
		deleter := &fakeSeriesDeleter{}
		service := testService(newFakeRepository(b), deleter)

		result, err := service.DeleteBook(context.Background(), ownerID, "b1", true)
		require.NoError(t, err)
		assert.True(t, result.SeriesDeleted)
		assert.Equal(t, []string{seriesID}, deleter.deleted)
	})

	t.Run("keeps_series_with_remaining_books", func(t *testing.T) {
		b1 := activeBook("b1", "Alpha")
		b1.SeriesID = &seriesID
		b2 := activeBook("b2", "Beta")
		b2.SeriesID = &seriesID
		deleter := &fakeSeriesDeleter{}
		service := testService(newFakeRepository(b1, b2), deleter)

		result, err := service.DeleteBook(context.Background(), ownerID, "b1", true)
		require.NoError(t, err)
		assert.False(t, result.SeriesDeleted)
		assert.Empty(t, deleter.deleted)
	})

	t.Run("series_failure_reported_not_fatal", func(t *testing.T) {
		b := activeBook("b1", "Alpha")
		b.SeriesID = &seriesID
		deleter := &fakeSeriesDeleter{err: errors.New("boom")}
		repo := newFakeRepository(b)
		service := testService(repo, deleter)

		result, err := service.DeleteBook(context.Background(), ownerID, "b1", true)
		require.NoError(t, err)
		assert.False(t, result.SeriesDeleted)
		require.NotNil(t, result.SeriesError)
		assert.NotNil(t, repo.books["b1"].DeletedAt, "book deletion must stick despite series failure")
	})

	t.Run("no_cascade_without_flag", func(t *testing.T) {
		b := activeBook("b1", "Alpha")
		b.SeriesID = &seriesID
		deleter := &fakeSeriesDeleter{}
		service := testService(newFakeRepository(b), deleter)

		result, err := service.DeleteBook(context.Background(), ownerID, "b1", false)
		require.NoError(t, err)
		assert.False(t, result.SeriesDeleted)
		assert.Empty(t, deleter.deleted)
	})
}

func TestService_DeleteRead_RenumbersPositions(t *testing.T) {
	now := time.Now()
	b := activeBook("b1", "Alpha")
	b.Reads = []Read{
		{ID: "r1", Position: 1, StartedAt: &now, FinishedAt: &now},
		{ID: "r2", Position: 2, StartedAt: &now, FinishedAt: &now},
		{ID: "r3", Position: 3, StartedAt: &now},
	}
	repo := newFakeRepository(b)
	service := testService(repo, nil)

	updated, err := service.DeleteRead(context.Background(), ownerID, "b1", "r1")
	require.NoError(t, err)
	require.Len(t, updated.Reads, 2)
	assert.Equal(t, "r2", updated.Reads[0].ID)
	assert.Equal(t, 1, updated.Reads[0].Position)
	assert.Equal(t, 2, updated.Reads[1].Position)
}

func TestSortBooks(t *testing.T) {
	three, five := 3, 5
	books := []*Book{
		{ID: "b1", Title: "zebra", Author: "Young", Rating: &three},
		{ID: "b2", Title: "Apple", Author: "adams", Rating: &five},
		{ID: "b3", Title: "mango", Author: "Brown"},
	}

	sortBooks(books, SortTitle)
	assert.Equal(t, []string{"b2", "b3", "b1"}, bookIDs(books))

	sortBooks(books, SortAuthor)
	assert.Equal(t, []string{"b2", "b3", "b1"}, bookIDs(books))

	sortBooks(books, SortRating)
	assert.Equal(t, []string{"b2", "b1", "b3"}, bookIDs(books), "unrated books sort last")
}

func bookIDs(books []*Book) []string {
	ids := make([]string, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	return ids
}

