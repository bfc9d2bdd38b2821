// Copyright (c) 2026 Inkshelf. All rights reserved.

package prefs

import (
	"context"
	"errors"
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

func (repository *PostgresRepository) Get(context context.Context, userID, key string) (string, error) {
	t := schema.SystemPreference
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1 AND %s = $2
	`, t.Value, t.Table, t.UserID, t.Key)

	var value string
	err := repository.db.QueryRow(context, query, userID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", dberr.Wrap(err, "get_preference")
	}
	return value, nil
}

func (repository *PostgresRepository) Set(context context.Context, userID, key, value string) error {
	t := schema.SystemPreference
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = now()
	`, t.Table, t.UserID, t.Key, t.Value,
		t.UserID, t.Key, t.Value, t.Value, t.UpdatedAt)

	if _, err := repository.db.Exec(context, query, userID, key, value); err != nil {
		return dberr.Wrap(err, "set_preference")
	}
	return nil
}
