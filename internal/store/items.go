package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pantry/internal/models"
)

// ErrNotFound reports a delete or lookup against an absent item id.
var ErrNotFound = errors.New("item not found")

// CreateItem inserts a pantry item. The caller assigns the id.
func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item is required")
	}
	if item.ID == "" {
		return fmt.Errorf("item id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, name, quantity, image_url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		item.ID,
		item.Name,
		item.Quantity,
		item.ImageURL,
		formatTime(item.CreatedAt),
	)
	return err
}

// GetItem returns an item by id, or nil when absent.
func (s *Store) GetItem(ctx context.Context, id string) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, quantity, image_url, created_at
		FROM items WHERE id = ?
	`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns all items in insertion order.
func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, quantity, image_url, created_at
		FROM items ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// DeleteItem removes an item. Absent ids report ErrNotFound.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountItems returns the total number of stored items.
func (s *Store) CountItems(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count)
	return count, err
}

func scanItem(scanner interface {
	Scan(dest ...any) error
}) (*models.Item, error) {
	var item models.Item
	var createdAt string

	if err := scanner.Scan(
		&item.ID,
		&item.Name,
		&item.Quantity,
		&item.ImageURL,
		&createdAt,
	); err != nil {
		return nil, err
	}

	parsed, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for %s: %w", item.ID, err)
	}
	item.CreatedAt = parsed

	return &item, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}
