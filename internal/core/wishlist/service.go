// Copyright (c) 2026 Inkshelf. All rights reserved.

package wishlist

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

// BookCreator adds a purchased book to the library. Satisfied by the book
// service.
type BookCreator interface {
	CreateBook(context context.Context, userID string, b *book.Book) error
}

type Service struct {
	repo   Repository
	books  BookCreator
	logger *slog.Logger
}

func NewService(repo Repository, books BookCreator, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
	}
}

// PurchaseResult reports the two phases of promoting a wish into the
// library: the book creation (fatal on failure) and the wishlist removal
// (best-effort).
type PurchaseResult struct {
	Book            *book.Book `json:"book"`
	WishlistRemoved bool       `json:"wishlist_removed"`
	WishlistError   *string    `json:"wishlist_error,omitempty"`
}

// Sort keys accepted by [Service.ListItems].
const (
	SortPriority  = "priority"
	SortCreatedAt = "created_at"
	SortTitle     = "title"
)

// ListItems returns the wishlist ordered by the given sort key. The default,
// priority, bands items high, medium, low, then unset, newest first inside
// each band; created_at is newest first; title is case-insensitive
// alphabetical. Sorts are stable over the storage order (newest first).
func (service *Service) ListItems(context context.Context, userID, sortKey string) ([]*Item, error) {
	if sortKey == "" {
		sortKey = SortPriority
	}
	validator := &validate.Validator{}
	validator.OneOf("sort", sortKey, SortPriority, SortCreatedAt, SortTitle)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	items, err := service.repo.ListItems(context, userID)
	if err != nil {
		return nil, err
	}

	switch sortKey {
	case SortTitle:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
		})
	case SortCreatedAt:
		// Storage order already is newest first.
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return rank(items[i].Priority) < rank(items[j].Priority)
		})
	}
	return items, nil
}

func (service *Service) GetItem(context context.Context, userID, id string) (*Item, error) {
	return service.repo.GetItem(context, userID, id)
}

func (service *Service) CreateItem(context context.Context, userID string, item *Item) error {
	if err := normalizeAndValidate(item); err != nil {
		return err
	}

	item.ID = uuid.Must()
	item.UserID = userID

	if err := service.repo.CreateItem(context, item); err != nil {
		return err
	}

	service.logger.Info("wishlist_item_created", slog.String("title", item.Title))
	return nil
}

// UpdateItem applies a partial update: only the supplied fields change,
// and the merged item is validated as a whole before it is written back.
func (service *Service) UpdateItem(context context.Context, userID, id string, p *Patch) (*Item, error) {
	item, err := service.repo.GetItem(context, userID, id)
	if err != nil {
		return nil, err
	}

	p.apply(item)
	if err := normalizeAndValidate(item); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateItem(context, item); err != nil {
		return nil, err
	}

	service.logger.Info("wishlist_item_updated", slog.String("item_id", id))
	return item, nil
}

func (service *Service) DeleteItem(context context.Context, userID, id string) error {
	if err := service.repo.DeleteItem(context, userID, id); err != nil {
		return err
	}

	service.logger.Info("wishlist_item_deleted", slog.String("item_id", id))
	return nil
}

// Purchase converts a wishlist item into a library book.
//
// The book is created first so a failure can never lose data. Removing the
// wishlist entry afterwards is best-effort: if it fails, the result reports
// the leftover entry and the caller can retry the delete.
func (service *Service) Purchase(context context.Context, userID, id string) (*PurchaseResult, error) {
	item, err := service.repo.GetItem(context, userID, id)
	if err != nil {
		return nil, err
	}

	newBook := &book.Book{
		Title:         item.Title,
		Author:        item.Author,
		ISBN:          item.ISBN,
		CoverImageURL: item.CoverImageURL,
		Covers:        item.Covers,
		Publisher:     item.Publisher,
		PublishedDate: item.PublishedDate,
		PageCount:     item.PageCount,
		Notes:         item.Notes,
	}
	if err := service.books.CreateBook(context, userID, newBook); err != nil {
		return nil, err
	}

	result := &PurchaseResult{Book: newBook, WishlistRemoved: true}
	if err := service.repo.DeleteItem(context, userID, id); err != nil {
		message := err.Error()
		result.WishlistRemoved = false
		result.WishlistError = &message
		service.logger.Warn("wishlist_cleanup_failed",
			slog.String("item_id", id), slog.String("error", message))
	}

	service.logger.Info("wishlist_item_purchased",
		slog.String("item_id", id), slog.String("book_id", newBook.ID))
	return result, nil
}

func normalizeAndValidate(item *Item) error {
	item.Title = strings.TrimSpace(item.Title)
	item.Author = strings.TrimSpace(item.Author)

	if item.ISBN != nil {
		normalized := isbn.Normalize(strings.TrimSpace(*item.ISBN))
		if normalized == "" {
			item.ISBN = nil
		} else {
			item.ISBN = &normalized
		}
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, item.Title).MaxLen(FieldTitle, item.Title, MaxTitleLen)
	validator.Required(FieldAuthor, item.Author).MaxLen(FieldAuthor, item.Author, MaxAuthorLen)
	if item.ISBN != nil {
		validator.ISBN(FieldISBN, *item.ISBN)
	}
	if item.CoverImageURL != nil {
		validator.URL(FieldCoverImageURL, *item.CoverImageURL)
	}
	if item.Priority != nil {
		validator.OneOf(FieldPriority, string(*item.Priority),
			string(PriorityHigh), string(PriorityMedium), string(PriorityLow))
	}
	if item.Notes != nil {
		validator.MaxLen(FieldNotes, *item.Notes, MaxNotesLen)
	}
	return validator.Err()
}
