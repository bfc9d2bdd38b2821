// Copyright (c) 2026 Inkshelf. All rights reserved.

package wishlist

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

func itemColumns() string {
	t := schema.LibraryWishlist
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.UserID, t.Title, t.Author, t.ISBN, t.CoverImageURL, t.Covers,
		t.Publisher, t.PublishedDate, t.PageCount, t.Priority, t.Notes,
		t.CreatedAt, t.UpdatedAt)
}

func scanItem(row pgx.Row) (*Item, error) {
	item := &Item{}
	err := row.Scan(&item.ID, &item.UserID, &item.Title, &item.Author, &item.ISBN,
		&item.CoverImageURL, &item.Covers, &item.Publisher, &item.PublishedDate,
		&item.PageCount, &item.Priority, &item.Notes, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (repository *PostgresRepository) ListItems(context context.Context, userID string) ([]*Item, error) {
	t := schema.LibraryWishlist
	// Newest first; the service re-sorts by priority on top of this order.
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
	`, itemColumns(), t.Table, t.UserID, t.CreatedAt)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_wishlist")
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_wishlist_item")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repository *PostgresRepository) GetItem(context context.Context, userID, id string) (*Item, error) {
	t := schema.LibraryWishlist
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1 AND %s = $2
	`, itemColumns(), t.Table, t.ID, t.UserID)

	item, err := scanItem(repository.db.QueryRow(context, query, id, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_wishlist_item")
	}
	return item, nil
}

func (repository *PostgresRepository) CreateItem(context context.Context, item *Item) error {
	t := schema.LibraryWishlist
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s, %s
	`, t.Table, t.ID, t.UserID, t.Title, t.Author, t.ISBN, t.CoverImageURL, t.Covers,
		t.Publisher, t.PublishedDate, t.PageCount, t.Priority, t.Notes,
		t.CreatedAt, t.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		item.ID, item.UserID, item.Title, item.Author, item.ISBN,
		item.CoverImageURL, item.Covers, item.Publisher, item.PublishedDate,
		item.PageCount, item.Priority, item.Notes,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_wishlist_item")
	}
	return nil
}

func (repository *PostgresRepository) UpdateItem(context context.Context, item *Item) error {
	t := schema.LibraryWishlist
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
		    %s = $8, %s = $9, %s = $10, %s = now()
		WHERE %s = $11 AND %s = $12
	`, t.Table, t.Title, t.Author, t.ISBN, t.CoverImageURL, t.Covers,
		t.Publisher, t.PublishedDate, t.PageCount, t.Priority, t.Notes, t.UpdatedAt,
		t.ID, t.UserID)

	tag, err := repository.db.Exec(context, query,
		item.Title, item.Author, item.ISBN, item.CoverImageURL, item.Covers,
		item.Publisher, item.PublishedDate, item.PageCount, item.Priority, item.Notes,
		item.ID, item.UserID)
	if err != nil {
		return dberr.Wrap(err, "update_wishlist_item")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_wishlist_item")
	}
	return nil
}

func (repository *PostgresRepository) DeleteItem(context context.Context, userID, id string) error {
	t := schema.LibraryWishlist
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, t.Table, t.ID, t.UserID)

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_wishlist_item")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_wishlist_item")
	}
	return nil
}
