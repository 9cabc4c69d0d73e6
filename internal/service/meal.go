package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

const daysPerWeek = 7

var weekMealTypes = []string{model.MealTypeBreakfast, model.MealTypeLunch, model.MealTypeDinner}

// MealDraft holds the input of a new meal.
type MealDraft struct {
	Date     model.Date `json:"date"`
	MealType string     `json:"meal_type"`
	RecipeID *uuid.UUID `json:"recipe_id"`
	Notes    string     `json:"notes"`
	Planned  *bool      `json:"planned"`
}

// Meal manages the meal plan of a user.
type Meal struct {
	mealStore   model.MealStore
	recipeStore model.RecipeStore
	now         func() time.Time
	logger      *logger.Logger
}

// NewMeal creates a meal service.
func NewMeal(mealStore model.MealStore, recipeStore model.RecipeStore, logger *logger.Logger) *Meal {
	return &Meal{
		mealStore:   mealStore,
		recipeStore: recipeStore,
		now:         time.Now,
		logger:      logger,
	}
}

// List returns the meals of user matching filter, ordered by date then meal type.
func (s *Meal) List(ctx context.Context, user model.User, filter model.MealFilter) ([]model.Meal, error) {
	filter.UserID = user.ID
	filter.Offset, filter.Limit = normalizePage(filter.Offset, filter.Limit)

	meals, err := s.mealStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

// Week returns the meals of the seven days starting at weekStart, or at the
// Monday of the current week when weekStart is nil.
func (s *Meal) Week(ctx context.Context, user model.User, weekStart *model.Date) ([]model.Meal, error) {
	start := s.mondayOfThisWeek()
	if weekStart != nil {
		start = *weekStart
	}
	end := start.AddDays(daysPerWeek - 1)

	meals, err := s.mealStore.List(ctx, model.MealFilter{UserID: user.ID, From: &start, To: &end})
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly meals: %w", err)
	}
	return meals, nil
}

// Get returns one meal of user.
func (s *Meal) Get(ctx context.Context, user model.User, id uuid.UUID) (model.Meal, error) {
	meal, err := s.mealStore.GetByID(ctx, user.ID, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Meal{}, apperrors.NewErrMealNotFound()
	}
	if err != nil {
		return model.Meal{}, fmt.Errorf("failed to get meal: %w", err)
	}
	return meal, nil
}

// Create adds a meal to the plan of user.
func (s *Meal) Create(ctx context.Context, user model.User, draft MealDraft) (model.Meal, error) {
	if draft.Date.IsZero() {
		return model.Meal{}, apperrors.NewErrValidation("date is required")
	}
	if draft.MealType == "" {
		return model.Meal{}, apperrors.NewErrValidation("meal_type is required")
	}
	if err := s.checkRecipe(ctx, draft.RecipeID); err != nil {
		return model.Meal{}, err
	}

	planned := true
	if draft.Planned != nil {
		planned = *draft.Planned
	}

	meal, err := s.mealStore.Create(ctx, model.Meal{
		ID:       uuid.New(),
		UserID:   user.ID,
		Date:     draft.Date,
		MealType: draft.MealType,
		RecipeID: draft.RecipeID,
		Notes:    draft.Notes,
		Planned:  planned,
	})
	if err != nil {
		s.logger.Error("Meal service: failed to create meal",
			"user_id", user.ID,
			"error", err.Error())
		return model.Meal{}, fmt.Errorf("failed to create meal: %w", err)
	}
	return meal, nil
}

// Update applies the non-nil fields of patch to a meal of user.
func (s *Meal) Update(ctx context.Context, user model.User, id uuid.UUID, patch model.MealPatch) (model.Meal, error) {
	meal, err := s.Get(ctx, user, id)
	if err != nil {
		return model.Meal{}, err
	}
	if err := s.checkRecipe(ctx, patch.RecipeID); err != nil {
		return model.Meal{}, err
	}

	if patch.Date != nil {
		meal.Date = *patch.Date
	}
	if patch.MealType != nil {
		meal.MealType = *patch.MealType
	}
	if patch.RecipeID != nil {
		meal.RecipeID = patch.RecipeID
	}
	if patch.Notes != nil {
		meal.Notes = *patch.Notes
	}
	if patch.Planned != nil {
		meal.Planned = *patch.Planned
	}

	meal, err = s.mealStore.Update(ctx, meal)
	if errors.Is(err, model.ErrNotFound) {
		return model.Meal{}, apperrors.NewErrMealNotFound()
	}
	if err != nil {
		return model.Meal{}, fmt.Errorf("failed to update meal: %w", err)
	}
	return meal, nil
}

// Delete removes a meal of user.
func (s *Meal) Delete(ctx context.Context, user model.User, id uuid.UUID) error {
	err := s.mealStore.Delete(ctx, user.ID, id)
	if errors.Is(err, model.ErrNotFound) {
		return apperrors.NewErrMealNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	return nil
}

// GenerateWeek inserts planned placeholders for breakfast, lunch and dinner
// on each of the seven days starting at start (today when nil).
func (s *Meal) GenerateWeek(ctx context.Context, user model.User, start *model.Date, preferences string) ([]model.Meal, error) {
	day := model.NewDate(s.now())
	if start != nil {
		day = *start
	}

	var notes string
	if preferences != "" {
		notes = "Auto-generated for " + preferences
	}

	meals := make([]model.Meal, 0, daysPerWeek*len(weekMealTypes))
	for offset := range daysPerWeek {
		for _, mealType := range weekMealTypes {
			meals = append(meals, model.Meal{
				ID:       uuid.New(),
				UserID:   user.ID,
				Date:     day.AddDays(offset),
				MealType: mealType,
				Notes:    notes,
				Planned:  true,
			})
		}
	}

	created, err := s.mealStore.CreateMany(ctx, meals)
	if err != nil {
		s.logger.Error("Meal service: failed to generate weekly plan",
			"user_id", user.ID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to create weekly plan: %w", err)
	}

	s.logger.Info("Meal service: weekly plan generated",
		"user_id", user.ID,
		"start", day.String(),
		"meals", len(created))
	return created, nil
}

func (s *Meal) checkRecipe(ctx context.Context, recipeID *uuid.UUID) error {
	if recipeID == nil {
		return nil
	}
	ok, err := s.recipeStore.Exists(ctx, *recipeID)
	if err != nil {
		return fmt.Errorf("failed to check recipe: %w", err)
	}
	if !ok {
		return apperrors.NewErrRecipeNotFound()
	}
	return nil
}

func (s *Meal) mondayOfThisWeek() model.Date {
	today := model.NewDate(s.now())
	offset := (int(today.Weekday()) + 6) % 7
	return today.AddDays(-offset)
}
