package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MealStore defines persistence operations for planned meals.
type MealStore interface {
	Create(ctx context.Context, meal Meal) (Meal, error)
	CreateMany(ctx context.Context, meals []Meal) ([]Meal, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (Meal, error)
	List(ctx context.Context, filter MealFilter) ([]Meal, error)
	Update(ctx context.Context, meal Meal) (Meal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Meal types used by the weekly planner.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

// Meal is a planned or eaten meal on a given day.
type Meal struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Date      Date       `json:"date"`
	MealType  string     `json:"meal_type"`
	RecipeID  *uuid.UUID `json:"recipe_id"`
	Notes     string     `json:"notes,omitempty"`
	Planned   bool       `json:"planned"`
	CreatedAt time.Time  `json:"created_at"`
	Recipe    *Recipe    `json:"recipe"`
}

// MealFilter narrows a meal listing. Zero values mean "no constraint".
// Newest orders by date descending instead of date then meal type.
type MealFilter struct {
	UserID   uuid.UUID
	From     *Date
	To       *Date
	MealType string
	Newest   bool
	Offset   int
	Limit    int
}

// MealPatch holds the fields of a partial meal update; nil means unchanged.
type MealPatch struct {
	Date     *Date      `json:"date"`
	MealType *string    `json:"meal_type"`
	RecipeID *uuid.UUID `json:"recipe_id"`
	Notes    *string    `json:"notes"`
	Planned  *bool      `json:"planned"`
}
