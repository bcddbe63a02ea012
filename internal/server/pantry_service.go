package server

import (
	"context"
	"time"

	"pantry/internal/api"
	"pantry/internal/models"
	"pantry/internal/store"
)

// PantryService centralizes item creation defaults and id assignment.
type PantryService struct {
	store store.ItemStore
}

// NewPantryService constructs a PantryService.
func NewPantryService(itemStore store.ItemStore) *PantryService {
	return &PantryService{store: itemStore}
}

// List returns all stored items in insertion order. An empty store yields
// an empty slice, never nil, so the JSON response is [] rather than null.
func (s *PantryService) List(ctx context.Context) ([]models.Item, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// Create assigns a fresh id, persists the draft and returns the stored item.
func (s *PantryService) Create(ctx context.Context, req api.ItemCreateRequest) (models.Item, error) {
	var item models.Item

	id, err := store.GenerateItemID(s.store.ItemExists)
	if err != nil {
		return item, err
	}

	item = models.Item{
		ID:        id,
		Name:      req.Name,
		Quantity:  req.Quantity,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateItem(ctx, &item); err != nil {
		return models.Item{}, err
	}

	return item, nil
}

// Delete removes an item by id.
func (s *PantryService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteItem(ctx, id)
}
