package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

const (
	defaultListLimit = 100
	imageQuerySuffix = " healthy meal"
)

// Recipe manages user-owned recipes and their photos.
type Recipe struct {
	recipeStore model.RecipeStore
	storage     model.Storage
	images      model.ImageFinder
	logger      *logger.Logger
}

// NewRecipe creates a recipe service. storage and images may be nil, which
// disables photo upload and automatic image lookup respectively.
func NewRecipe(
	recipeStore model.RecipeStore,
	storage model.Storage,
	images model.ImageFinder,
	logger *logger.Logger,
) *Recipe {
	return &Recipe{
		recipeStore: recipeStore,
		storage:     storage,
		images:      images,
		logger:      logger,
	}
}

// List returns the recipes of user matching filter.
func (s *Recipe) List(ctx context.Context, user model.User, filter model.RecipeFilter) ([]model.Recipe, error) {
	filter.OwnerID = user.ID
	filter.Offset, filter.Limit = normalizePage(filter.Offset, filter.Limit)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Tags = cleanTags(filter.Tags)

	recipes, err := s.recipeStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Get returns a single recipe owned by user.
func (s *Recipe) Get(ctx context.Context, user model.User, id uuid.UUID) (model.Recipe, error) {
	recipe, err := s.recipeStore.GetByID(ctx, user.ID, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Recipe{}, apperrors.NewErrRecipeNotFound()
	}
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// Create stores a new recipe for user. When no image is given and an image
// finder is configured, a matching photo URL is attached.
func (s *Recipe) Create(ctx context.Context, user model.User, draft model.RecipeDraft) (model.Recipe, error) {
	if err := validateDraft(draft); err != nil {
		return model.Recipe{}, err
	}

	if draft.ImageURL == "" && s.images != nil {
		url, err := s.images.FindImage(ctx, draft.Title+imageQuerySuffix)
		if err != nil {
			s.logger.Warn("Recipe service: image lookup failed",
				"title", draft.Title,
				"error", err.Error())
		}
		draft.ImageURL = url
	}

	recipe := model.Recipe{
		ID:              uuid.New(),
		OwnerID:         user.ID,
		Title:           draft.Title,
		Description:     draft.Description,
		Instructions:    draft.Instructions,
		PrepTime:        draft.PrepTime,
		CookTime:        draft.CookTime,
		Servings:        draft.Servings,
		Difficulty:      draft.Difficulty,
		ImageURL:        draft.ImageURL,
		SourceURL:       draft.SourceURL,
		Tags:            nonNilStrings(draft.Tags),
		Ingredients:     nonNilIngredients(draft.Ingredients),
		NutritionalInfo: nonNilMap(draft.NutritionalInfo),
	}

	recipe, err := s.recipeStore.Create(ctx, recipe)
	if err != nil {
		s.logger.Error("Recipe service: failed to create recipe",
			"user_id", user.ID,
			"error", err.Error())
		return model.Recipe{}, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.logger.Debug("Recipe service: recipe created",
		"recipe_id", recipe.ID,
		"user_id", user.ID)
	return recipe, nil
}

// Update applies the non-nil fields of patch to a recipe owned by user.
func (s *Recipe) Update(ctx context.Context, user model.User, id uuid.UUID, patch model.RecipePatch) (model.Recipe, error) {
	recipe, err := s.Get(ctx, user, id)
	if err != nil {
		return model.Recipe{}, err
	}

	if patch.Title != nil {
		recipe.Title = *patch.Title
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.Instructions != nil {
		recipe.Instructions = *patch.Instructions
	}
	if patch.PrepTime != nil {
		recipe.PrepTime = patch.PrepTime
	}
	if patch.CookTime != nil {
		recipe.CookTime = patch.CookTime
	}
	if patch.Servings != nil {
		recipe.Servings = patch.Servings
	}
	if patch.Difficulty != nil {
		recipe.Difficulty = *patch.Difficulty
	}
	if patch.Tags != nil {
		recipe.Tags = nonNilStrings(*patch.Tags)
	}
	if patch.Ingredients != nil {
		recipe.Ingredients = nonNilIngredients(*patch.Ingredients)
	}
	if strings.TrimSpace(recipe.Title) == "" {
		return model.Recipe{}, apperrors.NewErrValidation("title is required")
	}

	recipe, err = s.recipeStore.Update(ctx, recipe)
	if errors.Is(err, model.ErrNotFound) {
		return model.Recipe{}, apperrors.NewErrRecipeNotFound()
	}
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to update recipe: %w", err)
	}
	return recipe, nil
}

// Delete removes a recipe owned by user, detaching it from meals and
// dropping its stored photo.
func (s *Recipe) Delete(ctx context.Context, user model.User, id uuid.UUID) error {
	err := s.recipeStore.Delete(ctx, user.ID, id)
	if errors.Is(err, model.ErrNotFound) {
		return apperrors.NewErrRecipeNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if s.storage != nil {
		if err := s.storage.Delete(ctx, photoKey(user.ID, id)); err != nil {
			s.logger.Warn("Recipe service: failed to delete recipe photo",
				"recipe_id", id,
				"error", err.Error())
		}
	}
	return nil
}

// UploadPhoto stores an image for a recipe owned by user and points the
// recipe's image URL at it.
func (s *Recipe) UploadPhoto(ctx context.Context, user model.User, id uuid.UUID, reader io.Reader, size int64, contentType string) (model.Recipe, error) {
	if s.storage == nil {
		return model.Recipe{}, apperrors.NewErrStorageUnavailable()
	}
	if !strings.HasPrefix(contentType, "image/") {
		return model.Recipe{}, apperrors.NewErrValidation("photo must be an image, got %q", contentType)
	}

	recipe, err := s.Get(ctx, user, id)
	if err != nil {
		return model.Recipe{}, err
	}

	if err := s.storage.Upload(ctx, photoKey(user.ID, id), reader, size, contentType); err != nil {
		s.logger.Error("Recipe service: failed to upload photo",
			"recipe_id", id,
			"error", err.Error())
		return model.Recipe{}, fmt.Errorf("failed to upload photo: %w", err)
	}

	recipe.ImageURL = PhotoURL(id)
	recipe, err = s.recipeStore.Update(ctx, recipe)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to update recipe: %w", err)
	}
	return recipe, nil
}

// Photo opens the stored image of a recipe owned by user.
func (s *Recipe) Photo(ctx context.Context, user model.User, id uuid.UUID) (io.ReadCloser, error) {
	if s.storage == nil {
		return nil, apperrors.NewErrStorageUnavailable()
	}
	if _, err := s.Get(ctx, user, id); err != nil {
		return nil, err
	}

	key := photoKey(user.ID, id)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to stat photo: %w", err)
	}
	if !exists {
		return nil, apperrors.NewErrPhotoNotFound()
	}

	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download photo: %w", err)
	}
	return rc, nil
}

// PhotoURL is the API path a recipe photo is served from.
func PhotoURL(id uuid.UUID) string {
	return "/api/recipes/" + id.String() + "/photo"
}

func photoKey(ownerID, id uuid.UUID) string {
	return "recipes/" + ownerID.String() + "/" + id.String()
}

func validateDraft(draft model.RecipeDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return apperrors.NewErrValidation("title is required")
	}
	if strings.TrimSpace(draft.Instructions) == "" {
		return apperrors.NewErrValidation("instructions are required")
	}
	return nil
}

func normalizePage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return offset, limit
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilIngredients(v []model.Ingredient) []model.Ingredient {
	if v == nil {
		return []model.Ingredient{}
	}
	return v
}

func nonNilMap(v map[string]any) map[string]any {
	if v == nil {
		return map[string]any{}
	}
	return v
}
