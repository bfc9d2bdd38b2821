// Copyright (c) 2026 Inkshelf. All rights reserved.

package book

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkshelf/inkshelf/internal/platform/database/schema"
	"github.com/inkshelf/inkshelf/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func bookSelectColumns() string {
	t := schema.LibraryBook
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.UserID, t.Title, t.Author, t.ISBN, t.CoverImageURL, t.Covers,
		t.Publisher, t.PublishedDate, t.PhysicalFormat, t.PageCount, t.Rating,
		t.SeriesID, t.SeriesPosition, t.Notes, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	)
}

func scanBook(row pgx.Row) (*Book, error) {
	b := &Book{}
	err := row.Scan(
		&b.ID, &b.UserID, &b.Title, &b.Author, &b.ISBN, &b.CoverImageURL, &b.Covers,
		&b.Publisher, &b.PublishedDate, &b.PhysicalFormat, &b.PageCount, &b.Rating,
		&b.SeriesID, &b.SeriesPosition, &b.Notes, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (repository *PostgresRepository) ListActive(context context.Context, userID string, f Filter) ([]*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`, bookSelectColumns(), schema.LibraryBook.Table, schema.LibraryBook.UserID, schema.LibraryBook.DeletedAt)

	args := []any{userID}

	if f.SeriesID != "" {
		args = append(args, f.SeriesID)
		query += fmt.Sprintf(" AND %s = $", schema.LibraryBook.SeriesID) + itos(len(args))
	}
	if f.GenreID != "" {
		args = append(args, f.GenreID)
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM %s bg WHERE bg.%s = %s.%s AND bg.%s = $",
			schema.LibraryBookGenre.Table, schema.LibraryBookGenre.BookID,
			schema.LibraryBook.Table, schema.LibraryBook.ID, schema.LibraryBookGenre.GenreID,
		) + itos(len(args)) + `)`
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		placeholder := "$" + itos(len(args))
		query += fmt.Sprintf(" AND (%s ILIKE %s OR %s ILIKE %s)",
			schema.LibraryBook.Title, placeholder, schema.LibraryBook.Author, placeholder)
	}

	query += fmt.Sprintf(" ORDER BY %s DESC", schema.LibraryBook.CreatedAt)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}

	if err := repository.hydrateReads(context, books); err != nil {
		return nil, err
	}
	if err := repository.hydrateGenres(context, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (repository *PostgresRepository) GetBook(context context.Context, userID, id string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
	`, bookSelectColumns(), schema.LibraryBook.Table,
		schema.LibraryBook.ID, schema.LibraryBook.UserID, schema.LibraryBook.DeletedAt)

	b, err := scanBook(repository.db.QueryRow(context, query, id, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}

	books := []*Book{b}
	if err := repository.hydrateReads(context, books); err != nil {
		return nil, err
	}
	if err := repository.hydrateGenres(context, books); err != nil {
		return nil, err
	}
	if err := repository.hydrateImages(context, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (repository *PostgresRepository) CreateBook(context context.Context, b *Book) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_book")
	}
	defer tx.Rollback(context)

	t := schema.LibraryBook
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING %s, %s
	`, t.Table,
		t.ID, t.UserID, t.Title, t.Author, t.ISBN, t.CoverImageURL, t.Covers,
		t.Publisher, t.PublishedDate, t.PhysicalFormat, t.PageCount, t.Rating,
		t.SeriesID, t.SeriesPosition, t.Notes,
		t.CreatedAt, t.UpdatedAt,
	)

	err = tx.QueryRow(context, query,
		b.ID, b.UserID, b.Title, b.Author, b.ISBN, b.CoverImageURL, b.Covers,
		b.Publisher, b.PublishedDate, b.PhysicalFormat, b.PageCount, b.Rating,
		b.SeriesID, b.SeriesPosition, b.Notes,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_book")
	}

	if err := insertGenreLinks(context, tx, b.ID, b.GenreIDs); err != nil {
		return err
	}
	if err := recountGenres(context, tx, b.GenreIDs); err != nil {
		return err
	}
	return tx.Commit(context)
}

func (repository *PostgresRepository) UpdateBook(context context.Context, b *Book) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_book")
	}
	defer tx.Rollback(context)

	t := schema.LibraryBook
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
		    %s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = now()
		WHERE %s = $14 AND %s = $15 AND %s IS NULL
	`, t.Table,
		t.Title, t.Author, t.ISBN, t.CoverImageURL, t.Covers, t.Publisher, t.PublishedDate,
		t.PhysicalFormat, t.PageCount, t.Rating, t.SeriesID, t.SeriesPosition, t.Notes, t.UpdatedAt,
		t.ID, t.UserID, t.DeletedAt,
	)

	tag, err := tx.Exec(context, query,
		b.Title, b.Author, b.ISBN, b.CoverImageURL, b.Covers, b.Publisher, b.PublishedDate,
		b.PhysicalFormat, b.PageCount, b.Rating, b.SeriesID, b.SeriesPosition, b.Notes,
		b.ID, b.UserID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_book")
	}

	oldGenreIDs, err := genreLinksOf(context, tx, b.ID)
	if err != nil {
		return err
	}

	deleteLinks := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.LibraryBookGenre.Table, schema.LibraryBookGenre.BookID)
	if _, err := tx.Exec(context, deleteLinks, b.ID); err != nil {
		return dberr.Wrap(err, "clear_book_genres")
	}
	if err := insertGenreLinks(context, tx, b.ID, b.GenreIDs); err != nil {
		return err
	}
	if err := recountGenres(context, tx, append(oldGenreIDs, b.GenreIDs...)); err != nil {
		return err
	}
	return tx.Commit(context)
}

func (repository *PostgresRepository) SoftDeleteBook(context context.Context, userID, id string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_book")
	}
	defer tx.Rollback(context)

	genreIDs, err := genreLinksOf(context, tx, id)
	if err != nil {
		return err
	}

	t := schema.LibraryBook
	query := fmt.Sprintf(`
		UPDATE %s SET %s = now(), %s = now()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
	`, t.Table, t.DeletedAt, t.UpdatedAt, t.ID, t.UserID, t.DeletedAt)

	tag, err := tx.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_book")
	}

	if err := recountGenres(context, tx, genreIDs); err != nil {
		return err
	}
	return tx.Commit(context)
}

func (repository *PostgresRepository) CountActiveInSeries(context context.Context, userID, seriesID string) (int, error) {
	t := schema.LibraryBook
	query := fmt.Sprintf(`
		SELECT count(*) FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
	`, t.Table, t.UserID, t.SeriesID, t.DeletedAt)

	var total int
	if err := repository.db.QueryRow(context, query, userID, seriesID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_series_books")
	}
	return total, nil
}

// # Read History

func (repository *PostgresRepository) AppendRead(context context.Context, bookID string, r *Read) error {
	t := schema.LibraryBookRead
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`, t.Table, t.ID, t.BookID, t.Position, t.StartedAt, t.FinishedAt)

	if _, err := repository.db.Exec(context, query, r.ID, bookID, r.Position, r.StartedAt, r.FinishedAt); err != nil {
		return dberr.Wrap(err, "append_read")
	}
	return touchBook(context, repository.db, bookID)
}

func (repository *PostgresRepository) UpdateRead(context context.Context, bookID string, r *Read) error {
	t := schema.LibraryBookRead
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2
		WHERE %s = $3 AND %s = $4
	`, t.Table, t.StartedAt, t.FinishedAt, t.ID, t.BookID)

	tag, err := repository.db.Exec(context, query, r.StartedAt, r.FinishedAt, r.ID, bookID)
	if err != nil {
		return dberr.Wrap(err, "update_read")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_read")
	}
	return touchBook(context, repository.db, bookID)
}

func (repository *PostgresRepository) DeleteRead(context context.Context, bookID, readID string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_read")
	}
	defer tx.Rollback(context)

	t := schema.LibraryBookRead
	deleteQuery := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1 AND %s = $2
		RETURNING %s
	`, t.Table, t.ID, t.BookID, t.Position)

	var position int
	if err := tx.QueryRow(context, deleteQuery, readID, bookID).Scan(&position); err != nil {
		return dberr.Wrap(err, "delete_read")
	}

	// Close the gap so positions stay contiguous.
	renumber := fmt.Sprintf(`
		UPDATE %s SET %s = %s - 1 WHERE %s = $1 AND %s > $2
	`, t.Table, t.Position, t.Position, t.BookID, t.Position)
	if _, err := tx.Exec(context, renumber, bookID, position); err != nil {
		return dberr.Wrap(err, "renumber_reads")
	}

	if err := touchBook(context, tx, bookID); err != nil {
		return err
	}
	return tx.Commit(context)
}

// # Hydration

func (repository *PostgresRepository) hydrateReads(context context.Context, books []*Book) error {
	if len(books) == 0 {
		return nil
	}

	index := make(map[string]*Book, len(books))
	ids := make([]string, 0, len(books))
	for _, b := range books {
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
		return dberr.Wrap(err, "list_reads")
	}
	defer rows.Close()

	for rows.Next() {
		var bookID string
		var r Read
		if err := rows.Scan(&bookID, &r.ID, &r.Position, &r.StartedAt, &r.FinishedAt); err != nil {
			return dberr.Wrap(err, "scan_read")
		}
		if b, ok := index[bookID]; ok {
			b.Reads = append(b.Reads, r)
		}
	}
	return rows.Err()
}

func (repository *PostgresRepository) hydrateGenres(context context.Context, books []*Book) error {
	if len(books) == 0 {
		return nil
	}

	index := make(map[string]*Book, len(books))
	ids := make([]string, 0, len(books))
	for _, b := range books {
		index[b.ID] = b
		ids = append(ids, b.ID)
	}

	t := schema.LibraryBookGenre
	query := fmt.Sprintf(`
		SELECT %s, %s FROM %s WHERE %s = ANY($1)
	`, t.BookID, t.GenreID, t.Table, t.BookID)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_book_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var bookID, genreID string
		if err := rows.Scan(&bookID, &genreID); err != nil {
			return dberr.Wrap(err, "scan_book_genre")
		}
		if b, ok := index[bookID]; ok {
			b.GenreIDs = append(b.GenreIDs, genreID)
		}
	}
	return rows.Err()
}

func (repository *PostgresRepository) hydrateImages(context context.Context, b *Book) error {
	t := schema.LibraryBookImage
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s
	`, t.ID, t.URL, t.StoragePath, t.IsPrimary, t.Caption, t.UploadedAt,
		t.Table, t.BookID, t.IsPrimary, t.UploadedAt)

	rows, err := repository.db.Query(context, query, b.ID)
	if err != nil {
		return dberr.Wrap(err, "list_book_images")
	}
	defer rows.Close()

	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.URL, &img.StoragePath, &img.IsPrimary, &img.Caption, &img.UploadedAt); err != nil {
			return dberr.Wrap(err, "scan_book_image")
		}
		b.Images = append(b.Images, img)
	}
	return rows.Err()
}

// # Transaction Helpers

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func touchBook(context context.Context, db execer, bookID string) error {
	t := schema.LibraryBook
	query := fmt.Sprintf(`UPDATE %s SET %s = now() WHERE %s = $1`, t.Table, t.UpdatedAt, t.ID)
	if _, err := db.Exec(context, query, bookID); err != nil {
		return dberr.Wrap(err, "touch_book")
	}
	return nil
}

func insertGenreLinks(context context.Context, tx pgx.Tx, bookID string, genreIDs []string) error {
	t := schema.LibraryBookGenre
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, t.Table, t.BookID, t.GenreID)
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(context, query, bookID, genreID); err != nil {
			return dberr.Wrap(err, "link_book_genre")
		}
	}
	return nil
}

func genreLinksOf(context context.Context, tx pgx.Tx, bookID string) ([]string, error) {
	t := schema.LibraryBookGenre
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, t.GenreID, t.Table, t.BookID)

	rows, err := tx.Query(context, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_book_genres")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_book_genre")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// recountGenres recomputes the denormalized active-book counter for the
// affected genres inside the surrounding transaction.
func recountGenres(context context.Context, tx pgx.Tx, genreIDs []string) error {
	if len(genreIDs) == 0 {
		return nil
	}

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
		WHERE g.%s = ANY($1)
	`, g.Table, g.BookCount,
		bg.Table, b.Table, b.ID, bg.BookID,
		bg.GenreID, g.ID, b.DeletedAt,
		g.UpdatedAt, g.ID)

	if _, err := tx.Exec(context, query, dedupe(genreIDs)); err != nil {
		return dberr.Wrap(err, "recount_genres")
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func itos(i int) string {
	return strconv.Itoa(i)
}
