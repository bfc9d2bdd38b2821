// Copyright (c) 2026 Inkshelf. All rights reserved.

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
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

func (repository *PostgresRepository) ListGenres(context context.Context, userID string) ([]*Genre, error) {
	t := schema.CoreGenre
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s
	`, t.ID, t.UserID, t.Name, t.Color, t.BookCount, t.CreatedAt, t.UpdatedAt,
		t.Table, t.UserID, t.Name)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	var genres []*Genre
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Color, &g.BookCount, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func (repository *PostgresRepository) GetGenre(context context.Context, userID, id string) (*Genre, error) {
	t := schema.CoreGenre
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`, t.ID, t.UserID, t.Name, t.Color, t.BookCount, t.CreatedAt, t.UpdatedAt,
		t.Table, t.ID, t.UserID)

	g := &Genre{}
	err := repository.db.QueryRow(context, query, id, userID).
		Scan(&g.ID, &g.UserID, &g.Name, &g.Color, &g.BookCount, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre")
	}
	return g, nil
}

func (repository *PostgresRepository) CreateGenre(context context.Context, g *Genre) error {
	t := schema.CoreGenre
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s
	`, t.Table, t.ID, t.UserID, t.Name, t.Color, t.BookCount, t.CreatedAt, t.UpdatedAt)

	err := repository.db.QueryRow(context, query, g.ID, g.UserID, g.Name, g.Color).
		Scan(&g.BookCount, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_genre")
	}
	return nil
}

func (repository *PostgresRepository) UpdateGenre(context context.Context, g *Genre) error {
	t := schema.CoreGenre
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = now()
		WHERE %s = $3 AND %s = $4
	`, t.Table, t.Name, t.Color, t.UpdatedAt, t.ID, t.UserID)

	tag, err := repository.db.Exec(context, query, g.Name, g.Color, g.ID, g.UserID)
	if err != nil {
		return dberr.Wrap(err, "update_genre")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_genre")
	}
	return nil
}

func (repository *PostgresRepository) DeleteGenre(context context.Context, userID, id string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_genre")
	}
	defer tx.Rollback(context)

	t := schema.CoreGenre
	deleteGenre := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		t.Table, t.ID, t.UserID)

	tag, err := tx.Exec(context, deleteGenre, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_genre")
	}

	// Books keep existing; only the label links go.
	bg := schema.LibraryBookGenre
	deleteLinks := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, bg.Table, bg.GenreID)
	if _, err := tx.Exec(context, deleteLinks, id); err != nil {
		return dberr.Wrap(err, "unlink_genre_books")
	}

	return tx.Commit(context)
}
