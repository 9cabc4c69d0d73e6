package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GroceryStore defines persistence operations for pantry items.
type GroceryStore interface {
	Create(ctx context.Context, item GroceryItem) (GroceryItem, error)
	CreateMany(ctx context.Context, items []GroceryItem) ([]GroceryItem, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (GroceryItem, error)
	List(ctx context.Context, filter GroceryFilter) ([]GroceryItem, error)
	Update(ctx context.Context, item GroceryItem) (GroceryItem, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// GroceryItem is a single pantry entry.
type GroceryItem struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit,omitempty"`
	Category       string    `json:"category,omitempty"`
	ExpirationDate *Date     `json:"expiration_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GroceryFilter narrows a grocery listing. Nil bounds mean "no constraint".
type GroceryFilter struct {
	UserID          uuid.UUID
	Category        string
	ExpiresOnOrFrom *Date
	ExpiresOnOrTo   *Date
	Offset          int
	Limit           int
}

// GroceryPatch holds the fields of a partial grocery update; nil means unchanged.
type GroceryPatch struct {
	Name           *string  `json:"name"`
	Quantity       *float64 `json:"quantity"`
	Unit           *string  `json:"unit"`
	Category       *string  `json:"category"`
	ExpirationDate *Date    `json:"expiration_date"`
}
