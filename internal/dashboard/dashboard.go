// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package dashboard aggregates the user's library into the home-screen view.

Every section is computed in one pass over the active collection — there is
no dashboard state to keep in sync with book mutations.
*/
package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/inkshelf/inkshelf/internal/core/book"
	"github.com/inkshelf/inkshelf/internal/core/series"
)

const sectionLimit = 10

// minTopRating is the cutoff for the top-rated shelf.
const minTopRating = 4

// BookSource supplies the active library. Satisfied by the book service.
type BookSource interface {
	ListAllActive(context context.Context, userID string) ([]*book.Book, error)
}

// SeriesSource supplies the user's series. Satisfied by the series service.
type SeriesSource interface {
	ListSeries(context context.Context, userID string) ([]*series.Series, error)
}

// SeriesGroup is one series with the user's books in it.
type SeriesGroup struct {
	SeriesID   string       `json:"series_id"`
	SeriesName string       `json:"series_name"`
	TotalBooks *int         `json:"total_books"`
	Books      []*book.Book `json:"books"`
}

// LibraryHealth lists books whose catalogue data is incomplete.
type LibraryHealth struct {
	MissingISBN      []*book.Book `json:"missing_isbn"`
	MissingCover     []*book.Book `json:"missing_cover"`
	MissingGenres    []*book.Book `json:"missing_genres"`
	MissingPageCount []*book.Book `json:"missing_page_count"`
}

// View is the full dashboard payload.
type View struct {
	TotalBooks       int            `json:"total_books"`
	CurrentlyReading []*book.Book   `json:"currently_reading"`
	RecentlyAdded    []*book.Book   `json:"recently_added"`
	TopRated         []*book.Book   `json:"top_rated"`
	RecentlyFinished []*book.Book   `json:"recently_finished"`
	FinishedThisYear int            `json:"finished_this_year"`
	BooksBySeries    []SeriesGroup  `json:"books_by_series"`
	LibraryHealth    *LibraryHealth `json:"library_health"`
}

type Service struct {
	books  BookSource
	series SeriesSource
	logger *slog.Logger
	now    func() time.Time
}

func NewService(books BookSource, series SeriesSource, logger *slog.Logger) *Service {
	return &Service{
		books:  books,
		series: series,
		logger: logger,
		now:    time.Now,
	}
}

// Build assembles the dashboard for one user.
func (service *Service) Build(context context.Context, userID string) (*View, error) {
	all, err := service.books.ListAllActive(context, userID)
	if err != nil {
		return nil, err
	}
	userSeries, err := service.series.ListSeries(context, userID)
	if err != nil {
		return nil, err
	}

	now := service.now()
	view := &View{
		TotalBooks:       len(all),
		CurrentlyReading: currentlyReading(all),
		RecentlyAdded:    recentlyAdded(all),
		TopRated:         topRated(all),
		LibraryHealth:    libraryHealth(all),
	}
	view.RecentlyFinished, view.FinishedThisYear = finished(all, now)
	view.BooksBySeries = booksBySeries(all, userSeries)
	return view, nil
}

// currentlyReading returns books whose last read entry is open. Books that
// were never started stay off this shelf.
func currentlyReading(all []*book.Book) []*book.Book {
	out := make([]*book.Book, 0)
	for _, b := range all {
		if b.Status() == book.StatusReading {
			out = append(out, b)
		}
	}
	return out
}

func recentlyAdded(all []*book.Book) []*book.Book {
	sorted := append([]*book.Book(nil), all...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return clip(sorted)
}

func topRated(all []*book.Book) []*book.Book {
	rated := make([]*book.Book, 0)
	for _, b := range all {
		if b.Rating != nil && *b.Rating >= minTopRating {
			rated = append(rated, b)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return *rated[i].Rating > *rated[j].Rating
	})
	return clip(rated)
}

// finished returns the recently finished shelf plus the count of books
// finished in the current calendar year.
func finished(all []*book.Book, now time.Time) ([]*book.Book, int) {
	type finishedBook struct {
		book *book.Book
		at   time.Time
	}

	done := make([]finishedBook, 0)
	thisYear := 0
	for _, b := range all {
		at := b.LastFinishedAt()
		if at == nil {
			continue
		}
		done = append(done, finishedBook{book: b, at: *at})
		if at.Year() == now.Year() {
			thisYear++
		}
	}

	sort.SliceStable(done, func(i, j int) bool {
		return done[i].at.After(done[j].at)
	})

	out := make([]*book.Book, 0, len(done))
	for _, f := range done {
		out = append(out, f.book)
	}
	return clip(out), thisYear
}

func booksBySeries(all []*book.Book, userSeries []*series.Series) []SeriesGroup {
	members := make(map[string][]*book.Book)
	for _, b := range all {
		if b.SeriesID != nil {
			members[*b.SeriesID] = append(members[*b.SeriesID], b)
		}
	}

	groups := make([]SeriesGroup, 0)
	for _, s := range userSeries {
		books := members[s.ID]
		if len(books) == 0 {
			continue
		}
		sort.SliceStable(books, func(i, j int) bool {
			pi, pj := books[i].SeriesPosition, books[j].SeriesPosition
			switch {
			case pi != nil && pj != nil:
				return *pi < *pj
			case pi != nil:
				return true
			default:
				return false
			}
		})
		groups = append(groups, SeriesGroup{
			SeriesID:   s.ID,
			SeriesName: s.Name,
			TotalBooks: s.TotalBooks,
			Books:      books,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].SeriesName < groups[j].SeriesName
	})
	return groups
}

func libraryHealth(all []*book.Book) *LibraryHealth {
	health := &LibraryHealth{
		MissingISBN:      []*book.Book{},
		MissingCover:     []*book.Book{},
		MissingGenres:    []*book.Book{},
		MissingPageCount: []*book.Book{},
	}
	for _, b := range all {
		if b.ISBN == nil {
			health.MissingISBN = append(health.MissingISBN, b)
		}
		if b.CoverImageURL == nil && len(b.Covers) == 0 {
			health.MissingCover = append(health.MissingCover, b)
		}
		if len(b.GenreIDs) == 0 {
			health.MissingGenres = append(health.MissingGenres, b)
		}
		if b.PageCount == nil {
			health.MissingPageCount = append(health.MissingPageCount, b)
		}
	}
	return health
}

func clip(books []*book.Book) []*book.Book {
	if len(books) > sectionLimit {
		return books[:sectionLimit]
	}
	return books
}
