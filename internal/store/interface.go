package store

import (
	"context"

	"pantry/internal/models"
)

// ItemStore abstracts pantry record storage backends.
type ItemStore interface {
	ItemExists(id string) (bool, error)
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id string) (*models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	DeleteItem(ctx context.Context, id string) error
	CountItems(ctx context.Context) (int, error)
}

var _ ItemStore = (*Store)(nil)
