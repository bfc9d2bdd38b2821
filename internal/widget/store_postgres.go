// Copyright (c) 2026 Inkshelf. All rights reserved.

package widget

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) GetLayout(context context.Context, userID string) ([]Config, error) {
	t := schema.SystemWidget
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s
	`, t.Kind, t.Enabled, t.Position, t.Size, t.Settings,
		t.Table, t.UserID, t.Position)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "get_widget_layout")
	}
	defer rows.Close()

	var configs []Config
	for rows.Next() {
		var c Config
		if err := rows.Scan(&c.Kind, &c.Enabled, &c.Position, &c.Size, &c.Settings); err != nil {
			return nil, dberr.Wrap(err, "scan_widget")
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

func (repository *PostgresRepository) SaveLayout(context context.Context, userID string, configs []Config) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_save_layout")
	}
	defer tx.Rollback(context)

	t := schema.SystemWidget
	clear := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.UserID)
	if _, err := tx.Exec(context, clear, userID); err != nil {
		return dberr.Wrap(err, "clear_widget_layout")
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.Table, t.UserID, t.Kind, t.Enabled, t.Position, t.Size, t.Settings)

	for _, c := range configs {
		if _, err := tx.Exec(context, insert, userID, c.Kind, c.Enabled, c.Position, c.Size, c.Settings); err != nil {
			return dberr.Wrap(err, "insert_widget")
		}
	}
	return tx.Commit(context)
}
