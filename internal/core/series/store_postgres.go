// Copyright (c) 2026 Inkshelf. All rights reserved.

package series

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkshelf/inkshelf/internal/platform/database/schema"
	"github.com/inkshelf/inkshelf/internal/platform/dberr"
	uuid "github.com/inkshelf/inkshelf/pkg/uuidv7"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func seriesSelect() string {
	s := schema.CoreSeries
	b := schema.LibraryBook
	return fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
		       (SELECT count(*) FROM %s b
		        WHERE b.%s = s.%s AND b.%s = s.%s AND b.%s IS NULL) AS ownedcount
		FROM %s s
	`, s.ID, s.UserID, s.Name, s.Description, s.TotalBooks, s.CreatedAt, s.UpdatedAt,
		b.Table,
		b.SeriesID, s.ID, b.UserID, s.UserID, b.DeletedAt,
		s.Table)
}

func scanSeries(row pgx.Row) (*Series, error) {
	s := &Series{}
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &s.TotalBooks,
		&s.CreatedAt, &s.UpdatedAt, &s.OwnedCount)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (repository *PostgresRepository) ListSeries(context context.Context, userID string) ([]*Series, error) {
	s := schema.CoreSeries
	query := seriesSelect() + fmt.Sprintf(` WHERE s.%s = $1 ORDER BY s.%s`, s.UserID, s.Name)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_series")
	}
	defer rows.Close()

	var out []*Series
	for rows.Next() {
		one, err := scanSeries(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_series")
		}
		out = append(out, one)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_series")
	}

	if err := repository.hydrateExpected(context, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (repository *PostgresRepository) GetSeries(context context.Context, userID, id string) (*Series, error) {
	s := schema.CoreSeries
	query := seriesSelect() + fmt.Sprintf(` WHERE s.%s = $1 AND s.%s = $2`, s.ID, s.UserID)

	one, err := scanSeries(repository.db.QueryRow(context, query, id, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_series")
	}
	if err := repository.hydrateExpected(context, []*Series{one}); err != nil {
		return nil, err
	}
	return one, nil
}

func (repository *PostgresRepository) CreateSeries(context context.Context, s *Series) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_series")
	}
	defer tx.Rollback(context)

	t := schema.CoreSeries
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`, t.Table, t.ID, t.UserID, t.Name, t.Description, t.TotalBooks,
		t.CreatedAt, t.UpdatedAt)

	err = tx.QueryRow(context, query, s.ID, s.UserID, s.Name, s.Description, s.TotalBooks).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_series")
	}

	if err := replaceExpected(context, tx, s); err != nil {
		return err
	}
	return tx.Commit(context)
}

func (repository *PostgresRepository) UpdateSeries(context context.Context, s *Series) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_series")
	}
	defer tx.Rollback(context)

	t := schema.CoreSeries
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = now()
		WHERE %s = $4 AND %s = $5
	`, t.Table, t.Name, t.Description, t.TotalBooks, t.UpdatedAt, t.ID, t.UserID)

	tag, err := tx.Exec(context, query, s.Name, s.Description, s.TotalBooks, s.ID, s.UserID)
	if err != nil {
		return dberr.Wrap(err, "update_series")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_series")
	}

	if err := replaceExpected(context, tx, s); err != nil {
		return err
	}
	return tx.Commit(context)
}

func (repository *PostgresRepository) DeleteSeries(context context.Context, userID, id string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_series")
	}
	defer tx.Rollback(context)

	t := schema.CoreSeries
	deleteSeries := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		t.Table, t.ID, t.UserID)

	tag, err := tx.Exec(context, deleteSeries, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_series")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_series")
	}

	e := schema.CoreSeriesExpected
	deleteExpected := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, e.Table, e.SeriesID)
	if _, err := tx.Exec(context, deleteExpected, id); err != nil {
		return dberr.Wrap(err, "delete_series_expected")
	}

	// Unlink books (binned ones included) rather than deleting them.
	b := schema.LibraryBook
	unlink := fmt.Sprintf(`
		UPDATE %s SET %s = NULL, %s = NULL, %s = now()
		WHERE %s = $1 AND %s = $2
	`, b.Table, b.SeriesID, b.SeriesPosition, b.UpdatedAt, b.SeriesID, b.UserID)
	if _, err := tx.Exec(context, unlink, id, userID); err != nil {
		return dberr.Wrap(err, "unlink_series_books")
	}

	return tx.Commit(context)
}

func replaceExpected(context context.Context, tx pgx.Tx, s *Series) error {
	e := schema.CoreSeriesExpected
	clear := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, e.Table, e.SeriesID)
	if _, err := tx.Exec(context, clear, s.ID); err != nil {
		return dberr.Wrap(err, "clear_series_expected")
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`, e.Table, e.ID, e.SeriesID, e.Title, e.ISBN, e.Position)

	for i := range s.Expected {
		entry := &s.Expected[i]
		if entry.ID == "" {
			entry.ID = uuid.Must()
		}
		entry.SeriesID = s.ID
		if _, err := tx.Exec(context, insert, entry.ID, entry.SeriesID, entry.Title, entry.ISBN, entry.Position); err != nil {
			return dberr.Wrap(err, "insert_series_expected")
		}
	}
	return nil
}

func (repository *PostgresRepository) hydrateExpected(context context.Context, series []*Series) error {
	if len(series) == 0 {
		return nil
	}

	index := make(map[string]*Series, len(series))
	ids := make([]string, 0, len(series))
	for _, s := range series {
		index[s.ID] = s
		ids = append(ids, s.ID)
	}

	e := schema.CoreSeriesExpected
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s NULLS LAST, %s
	`, e.ID, e.SeriesID, e.Title, e.ISBN, e.Position,
		e.Table, e.SeriesID, e.Position, e.Title)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_series_expected")
	}
	defer rows.Close()

	for rows.Next() {
		var entry Expected
		if err := rows.Scan(&entry.ID, &entry.SeriesID, &entry.Title, &entry.ISBN, &entry.Position); err != nil {
			return dberr.Wrap(err, "scan_series_expected")
		}
		if s, ok := index[entry.SeriesID]; ok {
			s.Expected = append(s.Expected, entry)
		}
	}
	return rows.Err()
}
