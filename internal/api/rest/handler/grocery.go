package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/service"
)

// GroceryService defines pantry operations.
type GroceryService interface {
	List(ctx context.Context, user model.User, query service.GroceryQuery) ([]model.GroceryItem, error)
	ExpiringSoon(ctx context.Context, user model.User, days int) ([]model.GroceryItem, error)
	Get(ctx context.Context, user model.User, id uuid.UUID) (model.GroceryItem, error)
	Create(ctx context.Context, user model.User, draft service.GroceryDraft) (model.GroceryItem, error)
	CreateBulk(ctx context.Context, user model.User, drafts []service.GroceryDraft) ([]model.GroceryItem, error)
	Update(ctx context.Context, user model.User, id uuid.UUID, patch model.GroceryPatch) (model.GroceryItem, error)
	Delete(ctx context.Context, user model.User, id uuid.UUID) error
}

// Grocery handles HTTP endpoints for the pantry.
type Grocery struct {
	groceryService GroceryService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewGrocery creates a new Grocery handler.
func NewGrocery(groceryService GroceryService, contextManager model.ContextManager, logger *logger.Logger) *Grocery {
	return &Grocery{groceryService: groceryService, contextManager: contextManager, logger: logger}
}

// List returns the caller's pantry items.
func (h *Grocery) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	query := service.GroceryQuery{Category: r.URL.Query().Get("category")}
	if query.ExpiringSoon, err = queryBool(r, "expiring_soon"); err != nil {
		handleError(w, h.logger, err)
		return
	}
	if query.Offset, err = queryInt(r, "skip", 0); err != nil {
		handleError(w, h.logger, err)
		return
	}
	if query.Limit, err = queryInt(r, "limit", 0); err != nil {
		handleError(w, h.logger, err)
		return
	}

	items, err := h.groceryService.List(r.Context(), user, query)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ExpiringSoon returns items expiring within the days query parameter.
func (h *Grocery) ExpiringSoon(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	days, err := queryInt(r, "days", service.DefaultExpiryWindowDays)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	items, err := h.groceryService.ExpiringSoon(r.Context(), user, days)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get returns one pantry item.
func (h *Grocery) Get(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndID(w, r, h.contextManager, h.logger, "id")
	if !ok {
		return
	}

	item, err := h.groceryService.Get(r.Context(), user, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create adds an item to the pantry.
func (h *Grocery) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var draft service.GroceryDraft
	if err := decodeJSON(r, &draft); err != nil {
		handleError(w, h.logger, err)
		return
	}

	item, err := h.groceryService.Create(r.Context(), user, draft)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateBulk adds several items at once.
func (h *Grocery) CreateBulk(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var drafts []service.GroceryDraft
	if err := decodeJSON(r, &drafts); err != nil {
		handleError(w, h.logger, err)
		return
	}

	items, err := h.groceryService.CreateBulk(r.Context(), user, drafts)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Update applies a partial update to a pantry item.
func (h *Grocery) Update(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndID(w, r, h.contextManager, h.logger, "id")
	if !ok {
		return
	}

	var patch model.GroceryPatch
	if err := decodeJSON(r, &patch); err != nil {
		handleError(w, h.logger, err)
		return
	}

	item, err := h.groceryService.Update(r.Context(), user, id, patch)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete removes a pantry item.
func (h *Grocery) Delete(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndID(w, r, h.contextManager, h.logger, "id")
	if !ok {
		return
	}

	if err := h.groceryService.Delete(r.Context(), user, id); err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeMessage(w, "Grocery item deleted successfully")
}
