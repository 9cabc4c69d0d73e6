package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecipeStore defines persistence operations for recipes.
// All lookups are scoped by the owning user.
type RecipeStore interface {
	Create(ctx context.Context, recipe Recipe) (Recipe, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (Recipe, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter RecipeFilter) ([]Recipe, error)
	Update(ctx context.Context, recipe Recipe) (Recipe, error)
	// Delete removes the recipe and detaches it from any meal referencing it.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Recipe is a user-owned recipe.
type Recipe struct {
	ID              uuid.UUID      `json:"id"`
	OwnerID         uuid.UUID      `json:"user_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Instructions    string         `json:"instructions"`
	PrepTime        *int           `json:"prep_time"`
	CookTime        *int           `json:"cook_time"`
	Servings        *int           `json:"servings"`
	Difficulty      string         `json:"difficulty,omitempty"`
	ImageURL        string         `json:"image_url,omitempty"`
	SourceURL       string         `json:"source_url,omitempty"`
	Tags            []string       `json:"tags"`
	Ingredients     []Ingredient   `json:"ingredients"`
	NutritionalInfo map[string]any `json:"nutritional_info"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Ingredient is a free-form ingredient entry ({"name", "quantity", "unit", ...}).
type Ingredient map[string]any

// RecipeFilter narrows a recipe listing.
type RecipeFilter struct {
	OwnerID    uuid.UUID
	Search     string
	Tags       []string
	Difficulty string
	Offset     int
	Limit      int
}

// RecipeDraft is an unsaved recipe, as submitted by a client or proposed by the generator.
type RecipeDraft struct {
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Instructions    string         `json:"instructions"`
	PrepTime        *int           `json:"prep_time"`
	CookTime        *int           `json:"cook_time"`
	Servings        *int           `json:"servings"`
	Difficulty      string         `json:"difficulty,omitempty"`
	ImageURL        string         `json:"image_url,omitempty"`
	SourceURL       string         `json:"source_url,omitempty"`
	Tags            []string       `json:"tags"`
	Ingredients     []Ingredient   `json:"ingredients"`
	NutritionalInfo map[string]any `json:"nutritional_info"`
}

// RecipePatch holds the fields of a partial recipe update; nil means unchanged.
type RecipePatch struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	Instructions *string       `json:"instructions"`
	PrepTime     *int          `json:"prep_time"`
	CookTime     *int          `json:"cook_time"`
	Servings     *int          `json:"servings"`
	Difficulty   *string       `json:"difficulty"`
	Tags         *[]string     `json:"tags"`
	Ingredients  *[]Ingredient `json:"ingredients"`
}

// RecipeSuggestion is a short idea returned by the generator.
type RecipeSuggestion struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	ProteinEstimate string `json:"protein_estimate"`
}
