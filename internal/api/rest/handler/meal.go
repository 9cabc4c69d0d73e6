package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/service"
)

// MealService defines meal plan operations.
type MealService interface {
	List(ctx context.Context, user model.User, filter model.MealFilter) ([]model.Meal, error)
	Week(ctx context.Context, user model.User, weekStart *model.Date) ([]model.Meal, error)
	Get(ctx context.Context, user model.User, id uuid.UUID) (model.Meal, error)
	Create(ctx context.Context, user model.User, draft service.MealDraft) (model.Meal, error)
	Update(ctx context.Context, user model.User, id uuid.UUID, patch model.MealPatch) (model.Meal, error)
	Delete(ctx context.Context, user model.User, id uuid.UUID) error
	GenerateWeek(ctx context.Context, user model.User, start *model.Date, preferences string) ([]model.Meal, error)
}

type generateWeekResponse struct {
	Message string       `json:"message"`
	Meals   []model.Meal `json:"meals"`
}

// Meal handles HTTP endpoints for the meal plan.
type Meal struct {
	mealService    MealService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewMeal creates a new Meal handler.
func NewMeal(mealService MealService, contextManager model.ContextManager, logger *logger.Logger) *Meal {
	return &Meal{mealService: mealService, contextManager: contextManager, logger: logger}
}

// List returns the caller's meals filtered by date range and meal type.
func (h *Meal) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	filter := model.MealFilter{MealType: r.URL.Query().Get("meal_type")}
	if filter.From, err = queryDate(r, "start_date"); err != nil {
		handleError(w, h.logger, err)
		return
	}
	if filter.To, err = queryDate(r, "end_date"); err != nil {
		handleError(w, h.logger, err)
		return
	}
	if filter.Offset, err = queryInt(r, "skip", 0); err != nil {
		handleError(w, h.logger, err)
		return
	}
	if filter.Limit, err = queryInt(r, "limit", 0); err != nil {
		handleError(w, h.logger, err)
		return
	}

	meals, err := h.mealService.List(r.Context(), user, filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

// Week returns the meals of one week.
func (h *Meal) Week(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	weekStart, err := queryDate(r, "week_start")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	meals, err := h.mealService.Week(r.Context(), user, weekStart)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

// Get returns one meal.
func (h *Meal) Get(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndID(w, r, h.contextManager, h.logger, "id")
	if !ok {
		return
	}

	meal, err := h.mealService.Get(r.Context(), user, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

// Create schedules a meal.
func (h *Meal) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var draft service.MealDraft
	if err := decodeJSON(r, &draft); err != nil {
		handleError(w, h.logger, err)
		return
	}

	meal, err := h.mealService.Create(r.Context(), user, draft)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

// Update applies a partial update to a meal.
func (h *Meal) Update(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndID(w, r, h.contextManager, h.logger, "id")
	if !ok {
		return
	}

	var patch model.MealPatch
	if err := decodeJSON(r, &patch); err != nil {
		handleError(w, h.logger, err)
		return
	}

	meal, err := h.mealService.Update(r.Context(), user, id, patch)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

// Delete removes a meal.
func (h *Meal) Delete(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndID(w, r, h.contextManager, h.logger, "id")
	if !ok {
		return
	}

	if err := h.mealService.Delete(r.Context(), user, id); err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeMessage(w, "Meal deleted successfully")
}

// GenerateWeek fills a week with planned placeholder meals.
func (h *Meal) GenerateWeek(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	start, err := queryDate(r, "start_date")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	meals, err := h.mealService.GenerateWeek(r.Context(), user, start, r.URL.Query().Get("preferences"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, generateWeekResponse{Message: "Weekly meal plan generated", Meals: meals})
}
