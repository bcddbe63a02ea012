package models

import (
	"strconv"
	"time"
)

// Item is a single pantry inventory record.
//
// The id is assigned by the record store on creation and is immutable.
// Name, quantity and image URL are stored as submitted; validating them
// is the client's job, not the store's.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Summary renders the "name: quantity" form used in recipe prompts.
func (i Item) Summary() string {
	return i.Name + ": " + strconv.Itoa(i.Quantity)
}
