// Copyright (c) 2026 Inkshelf. All rights reserved.

package wishlist

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

	"github.com/inkshelf/inkshelf/internal/core/book"
	"github.com/inkshelf/inkshelf/internal/platform/apperr"
	"github.com/inkshelf/inkshelf/pkg/pointer"
)

type fakeRepository struct {
	items     map[string]*Item
	order     []string
	deleteErr error
}

func newFakeRepository(items ...*Item) *fakeRepository {
	repo := &fakeRepository{items: map[string]*Item{}}
	for _, item := range items {
		repo.items[item.ID] = item
		repo.order = append(repo.order, item.ID)
	}
	return repo
}

func (f *fakeRepository) ListItems(_ context.Context, userID string) ([]*Item, error) {
	var out []*Item
	for _, id := range f.order {
		if item, ok := f.items[id]; ok && item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetItem(_ context.Context, userID, id string) (*Item, error) {
	item, ok := f.items[id]
	if !ok || item.UserID != userID {
		return nil, apperr.NotFound("wishlist item")
	}
	return item, nil
}

func (f *fakeRepository) CreateItem(_ context.Context, item *Item) error {
	f.items[item.ID] = item
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeRepository) UpdateItem(_ context.Context, item *Item) error {
	existing, ok := f.items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return apperr.NotFound("wishlist item")
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepository) DeleteItem(_ context.Context, userID, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	item, ok := f.items[id]
	if !ok || item.UserID != userID {
		return apperr.NotFound("wishlist item")
	}
	delete(f.items, id)
	return nil
}

type fakeBookCreator struct {
	created []*book.Book
	err     error
}

func (f *fakeBookCreator) CreateBook(_ context.Context, userID string, b *book.Book) error {
	if f.err != nil {
		return f.err
	}
	b.ID = "book-" + b.Title
	b.UserID = userID
	f.created = append(f.created, b)
	return nil
}

func testService(repo Repository, books BookCreator) *Service {
	return NewService(repo, books, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const ownerID = "0195a000-0000-7000-8000-000000000001"

func priorityPtr(p Priority) *Priority { return &p }

func wish(id, title string, priority *Priority, createdAt time.Time) *Item {
	return &Item{ID: id, UserID: ownerID, Title: title, Author: "A", Priority: priority, CreatedAt: createdAt}
}

func TestService_ListItems_Sort(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Storage order is newest-first; the fake preserves insertion order, so
	// insert newest first the way the real store returns them.
	newRepo := func() *fakeRepository {
		return newFakeRepository(
			wish("w5", "Earthsea", nil, base.Add(5*time.Hour)),
			wish("w4", "dune", priorityPtr(PriorityLow), base.Add(4*time.Hour)),
			wish("w3", "Circe", priorityPtr(PriorityHigh), base.Add(3*time.Hour)),
			wish("w2", "Beloved", priorityPtr(PriorityMedium), base.Add(2*time.Hour)),
			wish("w1", "Ariel", priorityPtr(PriorityHigh), base.Add(1*time.Hour)),
		)
	}

	ids := func(items []*Item) []string {
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = item.ID
		}
		return out
	}

	t.Run("priority_default", func(t *testing.T) {
		service := testService(newRepo(), &fakeBookCreator{})

		items, err := service.ListItems(context.Background(), ownerID, "")
		require.NoError(t, err)
		// Bands: high → medium → low → unset; newest first inside each band.
		assert.Equal(t, []string{"w3", "w1", "w2", "w4", "w5"}, ids(items))
	})

	t.Run("created_at", func(t *testing.T) {
		service := testService(newRepo(), &fakeBookCreator{})

		items, err := service.ListItems(context.Background(), ownerID, SortCreatedAt)
		require.NoError(t, err)
		assert.Equal(t, []string{"w5", "w4", "w3", "w2", "w1"}, ids(items))
	})

	t.Run("title_case_insensitive", func(t *testing.T) {
		service := testService(newRepo(), &fakeBookCreator{})

		items, err := service.ListItems(context.Background(), ownerID, SortTitle)
		require.NoError(t, err)
		assert.Equal(t, []string{"w1", "w2", "w3", "w4", "w5"}, ids(items))
	})

	t.Run("rejects_unknown_sort", func(t *testing.T) {
		service := testService(newRepo(), &fakeBookCreator{})

		_, err := service.ListItems(context.Background(), ownerID, "rating")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestService_CreateItem_Validation(t *testing.T) {
	service := testService(newFakeRepository(), &fakeBookCreator{})

	t.Run("requires_title_and_author", func(t *testing.T) {
		err := service.CreateItem(context.Background(), ownerID, &Item{})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("rejects_unknown_priority", func(t *testing.T) {
		p := Priority("urgent")
		err := service.CreateItem(context.Background(), ownerID,
			&Item{Title: "T", Author: "A", Priority: &p})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("normalizes_isbn", func(t *testing.T) {
		isbnValue := "978-0-306-40615-7"
		item := &Item{Title: "T", Author: "A", ISBN: &isbnValue}
		require.NoError(t, service.CreateItem(context.Background(), ownerID, item))
		assert.Equal(t, "9780306406157", *item.ISBN)
	})
}

func TestService_UpdateItem_Partial(t *testing.T) {
	stored := func() *Item {
		item := wish("w1", "Piranesi", priorityPtr(PriorityMedium), time.Now())
		item.Notes = pointer.To("gift idea")
		return item
	}

	decode := func(t *testing.T, body string) *Patch {
		t.Helper()
		var p Patch
		require.NoError(t, json.Unmarshal([]byte(body), &p))
		return &p
	}

	t.Run("single_field_leaves_the_rest", func(t *testing.T) {
		repo := newFakeRepository(stored())
		service := testService(repo, &fakeBookCreator{})

		updated, err := service.UpdateItem(context.Background(), ownerID, "w1", decode(t, `{"priority": "high"}`))
		require.NoError(t, err)
		require.NotNil(t, updated.Priority)
		assert.Equal(t, PriorityHigh, *updated.Priority)
		assert.Equal(t, "Piranesi", updated.Title)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, "gift idea", *updated.Notes)
	})

	t.Run("explicit_null_clears_priority", func(t *testing.T) {
		repo := newFakeRepository(stored())
		service := testService(repo, &fakeBookCreator{})

		updated, err := service.UpdateItem(context.Background(), ownerID, "w1", decode(t, `{"priority": null}`))
		require.NoError(t, err)
		assert.Nil(t, updated.Priority)
		assert.Equal(t, "Piranesi", updated.Title)
	})

	t.Run("supplied_fields_still_validated", func(t *testing.T) {
		service := testService(newFakeRepository(stored()), &fakeBookCreator{})

		_, err := service.UpdateItem(context.Background(), ownerID, "w1", decode(t, `{"priority": "urgent"}`))
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestService_Purchase(t *testing.T) {
	newItem := func() *Item {
		pages := 320
		return &Item{
			ID: "w1", UserID: ownerID, Title: "Piranesi", Author: "Susanna Clarke",
			ISBN: pointer.To("9780306406157"), PageCount: &pages,
			Covers: map[string]string{"openlibrary": "https://covers.example/1.jpg"},
		}
	}

	t.Run("creates_book_then_removes_wish", func(t *testing.T) {
		repo := newFakeRepository(newItem())
		creator := &fakeBookCreator{}
		service := testService(repo, creator)

		result, err := service.Purchase(context.Background(), ownerID, "w1")
		require.NoError(t, err)
		assert.True(t, result.WishlistRemoved)
		assert.Nil(t, result.WishlistError)

		require.Len(t, creator.created, 1)
		created := creator.created[0]
		assert.Equal(t, "Piranesi", created.Title)
		assert.Equal(t, "9780306406157", *created.ISBN)
		assert.Equal(t, 320, *created.PageCount)
		assert.Empty(t, created.Reads, "purchased books start as want-to-read")

		_, err = repo.GetItem(context.Background(), ownerID, "w1")
		assert.Error(t, err)
	})

	t.Run("book_failure_aborts_purchase", func(t *testing.T) {
		repo := newFakeRepository(newItem())
		creator := &fakeBookCreator{err: errors.New("insert failed")}
		service := testService(repo, creator)

		_, err := service.Purchase(context.Background(), ownerID, "w1")
		require.Error(t, err)

		// The wish must survive a failed purchase.
		_, err = repo.GetItem(context.Background(), ownerID, "w1")
		assert.NoError(t, err)
	})

	t.Run("removal_failure_is_reported_not_fatal", func(t *testing.T) {
		repo := newFakeRepository(newItem())
		repo.deleteErr = errors.New("delete failed")
		creator := &fakeBookCreator{}
		service := testService(repo, creator)

		result, err := service.Purchase(context.Background(), ownerID, "w1")
		require.NoError(t, err)
		assert.False(t, result.WishlistRemoved)
		require.NotNil(t, result.WishlistError)
		assert.NotNil(t, result.Book)
		assert.Len(t, creator.created, 1)
	})

	t.Run("missing_item", func(t *testing.T) {
		service := testService(newFakeRepository(), &fakeBookCreator{})

		_, err := service.Purchase(context.Background(), ownerID, "missing")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

