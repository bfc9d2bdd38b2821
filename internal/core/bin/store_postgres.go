// Copyright (c) 2026 Inkshelf. All rights reserved.

package bin

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkshelf/inkshelf/internal/core/book"
	"github.com/inkshelf/inkshelf/internal/platform/database/schema"
	"github.com/inkshelf/inkshelf/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListBinned(context context.Context, userID string) ([]*BinnedBook, error) {
	t := schema.LibraryBook
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NOT NULL
		ORDER BY %s DESC
	`, t.ID, t.UserID, t.Title, t.Author, t.ISBN, t.CoverImageURL, t.Covers,
		t.Publisher, t.PublishedDate, t.PhysicalFormat, t.PageCount, t.Rating,
		t.SeriesID, t.SeriesPosition, t.Notes, t.CreatedAt, t.DeletedAt,
		t.Table, t.UserID, t.DeletedAt, t.DeletedAt)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_binned")
	}
	defer rows.Close()

	var binned []*BinnedBook
	for rows.Next() {
		b := &BinnedBook{}
		err := rows.Scan(
			&b.ID, &b.Book.UserID, &b.Title, &b.Author, &b.ISBN, &b.CoverImageURL, &b.Covers,
			&b.Publisher, &b.PublishedDate, &b.PhysicalFormat, &b.PageCount, &b.Rating,
			&b.SeriesID, &b.SeriesPosition, &b.Notes, &b.CreatedAt, &b.DeletedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_binned")
		}
		binned = append(binned, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_binned")
	}

	if err := repository.hydrateReads(context, binned); err != nil {
		return nil, err
	}
	return binned, nil
}

func (repository *PostgresRepository) Restore(context context.Context, userID, id string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_restore")
	}
	defer tx.Rollback(context)

	t := schema.LibraryBook
	query := fmt.Sprintf(`
		UPDATE %s SET %s = NULL, %s = now()
		WHERE %s = $1 AND %s = $2 AND %s IS NOT NULL
	`, t.Table, t.DeletedAt, t.UpdatedAt, t.ID, t.UserID, t.DeletedAt)

	tag, err := tx.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "restore_book")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "restore_book")
	}

	if err := recountGenresOfBooks(context, tx, []string{id}); err != nil {
		return err
	}
	return tx.Commit(context)
}

func (repository *PostgresRepository) Purge(context context.Context, userID, id string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_purge")
	}
	defer tx.Rollback(context)

	if err := purgeBooks(context, tx, []string{id}, &userID); err != nil {
		return err
	}
	return tx.Commit(context)
}

func (repository *PostgresRepository) PurgeAll(context context.Context, userID string) (int, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return 0, dberr.Wrap(err, "begin_purge_all")
	}
	defer tx.Rollback(context)

	ids, err := binnedIDs(context, tx, fmt.Sprintf("%s = $1", schema.LibraryBook.UserID), userID)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, tx.Commit(context)
	}

	if err := purgeBooks(context, tx, ids, &userID); err != nil {
		return 0, err
	}
	return len(ids), tx.Commit(context)
}

func (repository *PostgresRepository) PurgeExpired(context context.Context, cutoff time.Time) (int, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return 0, dberr.Wrap(err, "begin_purge_expired")
	}
	defer tx.Rollback(context)

	ids, err := binnedIDs(context, tx, fmt.Sprintf("%s < $1", schema.LibraryBook.DeletedAt), cutoff)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, tx.Commit(context)
	}

	if err := purgeBooks(context, tx, ids, nil); err != nil {
		return 0, err
	}
	return len(ids), tx.Commit(context)
}

// # Helpers

func binnedIDs(context context.Context, tx pgx.Tx, condition string, arg any) ([]string, error) {
	t := schema.LibraryBook
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s IS NOT NULL AND %s`,
		t.ID, t.Table, t.DeletedAt, condition)

	rows, err := tx.Query(context, query, arg)
	if err != nil {
		return nil, dberr.Wrap(err, "list_binned_ids")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_binned_id")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// purgeBooks hard-deletes the given binned books and their dependent rows.
// When userID is set the delete is additionally scoped to that owner and a
// zero-row result maps to not-found.
func purgeBooks(context context.Context, tx pgx.Tx, ids []string, userID *string) error {
	reads := schema.LibraryBookRead
	links := schema.LibraryBookGenre
	images := schema.LibraryBookImage

	for _, dependent := range []struct{ table, fk string }{
		{reads.Table, reads.BookID},
		{links.Table, links.BookID},
		{images.Table, images.BookID},
	} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`, dependent.table, dependent.fk)
		if _, err := tx.Exec(context, query, ids); err != nil {
			return dberr.Wrap(err, "purge_book_dependents")
		}
	}

	t := schema.LibraryBook
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1) AND %s IS NOT NULL`,
		t.Table, t.ID, t.DeletedAt)
	args := []any{ids}
	if userID != nil {
		query += fmt.Sprintf(` AND %s = $2`, t.UserID)
		args = append(args, *userID)
	}

	tag, err := tx.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "purge_books")
	}
	if userID != nil && tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "purge_books")
	}
	return nil
}

// recountGenresOfBooks refreshes the denormalized counters for every genre
// linked to the given books.
func recountGenresOfBooks(context context.Context, tx pgx.Tx, bookIDs []string) error {
	g := schema.CoreGenre
	bg := schema.LibraryBookGenre
	b := schema.LibraryBook
	query := fmt.Sprintf(`
		UPDATE %s g SET %s = (
			SELECT count(*)
			FROM %s bg
			JOIN %s b ON b.%s = bg.%s
			WHERE bg.%s = g.%s AND b.%s IS NULL
		), %s = now()
		WHERE g.%s IN (SELECT %s FROM %s WHERE %s = ANY($1))
	`, g.Table, g.BookCount,
		bg.Table, b.Table, b.ID, bg.BookID,
		bg.GenreID, g.ID, b.DeletedAt,
		g.UpdatedAt,
		g.ID, bg.GenreID, bg.Table, bg.BookID)

	if _, err := tx.Exec(context, query, bookIDs); err != nil {
		return dberr.Wrap(err, "recount_genres")
	}
	return nil
}

func (repository *PostgresRepository) hydrateReads(context context.Context, binned []*BinnedBook) error {
	if len(binned) == 0 {
		return nil
	}

	index := make(map[string]*BinnedBook, len(binned))
	ids := make([]string, 0, len(binned))
	for _, b := range binned {
		index[b.ID] = b
		ids = append(ids, b.ID)
	}

	t := schema.LibraryBookRead
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s, %s
	`, t.BookID, t.ID, t.Position, t.StartedAt, t.FinishedAt,
		t.Table, t.BookID, t.BookID, t.Position)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_binned_reads")
	}
	defer rows.Close()

	for rows.Next() {
		var bookID string
		var r book.Read
		if err := rows.Scan(&bookID, &r.ID, &r.Position, &r.StartedAt, &r.FinishedAt); err != nil {
			return dberr.Wrap(err, "scan_binned_read")
		}
		if b, ok := index[bookID]; ok {
			b.Reads = append(b.Reads, r)
		}
	}
	return rows.Err()
}
