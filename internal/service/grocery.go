package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// DefaultExpiryWindowDays is the "expiring soon" horizon.
const DefaultExpiryWindowDays = 7

// GroceryDraft holds the input of a new pantry item.
type GroceryDraft struct {
	Name           string      `json:"name"`
	Quantity       *float64    `json:"quantity"`
	Unit           string      `json:"unit"`
	Category       string      `json:"category"`
	ExpirationDate *model.Date `json:"expiration_date"`
}

// GroceryQuery narrows a pantry listing.
type GroceryQuery struct {
	Category     string
	ExpiringSoon bool
	Offset       int
	Limit        int
}

// Grocery manages the pantry of a user.
type Grocery struct {
	groceryStore model.GroceryStore
	now          func() time.Time
	logger       *logger.Logger
}

// NewGrocery creates a grocery service.
func NewGrocery(groceryStore model.GroceryStore, logger *logger.Logger) *Grocery {
	return &Grocery{groceryStore: groceryStore, now: time.Now, logger: logger}
}

// List returns the pantry items of user ordered by expiration date.
func (s *Grocery) List(ctx context.Context, user model.User, query GroceryQuery) ([]model.GroceryItem, error) {
	filter := model.GroceryFilter{UserID: user.ID, Category: query.Category}
	filter.Offset, filter.Limit = normalizePage(query.Offset, query.Limit)
	if query.ExpiringSoon {
		cutoff := model.NewDate(s.now()).AddDays(DefaultExpiryWindowDays)
		filter.ExpiresOnOrTo = &cutoff
	}

	items, err := s.groceryStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list grocery items: %w", err)
	}
	return items, nil
}

// ExpiringSoon returns items of user expiring between today and today+days inclusive.
func (s *Grocery) ExpiringSoon(ctx context.Context, user model.User, days int) ([]model.GroceryItem, error) {
	if days < 0 {
		return nil, apperrors.NewErrValidation("days must not be negative")
	}
	today := model.NewDate(s.now())
	cutoff := today.AddDays(days)

	items, err := s.groceryStore.List(ctx, model.GroceryFilter{
		UserID:          user.ID,
		ExpiresOnOrFrom: &today,
		ExpiresOnOrTo:   &cutoff,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring items: %w", err)
	}
	return items, nil
}

// Get returns one pantry item of user.
func (s *Grocery) Get(ctx context.Context, user model.User, id uuid.UUID) (model.GroceryItem, error) {
	item, err := s.groceryStore.GetByID(ctx, user.ID, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.GroceryItem{}, apperrors.NewErrGroceryItemNotFound()
	}
	if err != nil {
		return model.GroceryItem{}, fmt.Errorf("failed to get grocery item: %w", err)
	}
	return item, nil
}

// Create adds one pantry item for user.
func (s *Grocery) Create(ctx context.Context, user model.User, draft GroceryDraft) (model.GroceryItem, error) {
	item, err := newGroceryItem(user, draft)
	if err != nil {
		return model.GroceryItem{}, err
	}

	item, err = s.groceryStore.Create(ctx, item)
	if err != nil {
		return model.GroceryItem{}, fmt.Errorf("failed to create grocery item: %w", err)
	}
	return item, nil
}

// CreateBulk adds several pantry items for user atomically.
func (s *Grocery) CreateBulk(ctx context.Context, user model.User, drafts []GroceryDraft) ([]model.GroceryItem, error) {
	if len(drafts) == 0 {
		return []model.GroceryItem{}, nil
	}

	items := make([]model.GroceryItem, 0, len(drafts))
	for i, d := range drafts {
		item, err := newGroceryItem(user, d)
		if err != nil {
			return nil, apperrors.NewErrValidation("item %d: %s", i, err.Error())
		}
		items = append(items, item)
	}

	created, err := s.groceryStore.CreateMany(ctx, items)
	if err != nil {
		s.logger.Error("Grocery service: bulk insert failed",
			"user_id", user.ID,
			"count", len(items),
			"error", err.Error())
		return nil, fmt.Errorf("failed to create grocery items: %w", err)
	}
	return created, nil
}

// Update applies the non-nil fields of patch to a pantry item of user.
func (s *Grocery) Update(ctx context.Context, user model.User, id uuid.UUID, patch model.GroceryPatch) (model.GroceryItem, error) {
	item, err := s.Get(ctx, user, id)
	if err != nil {
		return model.GroceryItem{}, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return model.GroceryItem{}, apperrors.NewErrValidation("name is required")
		}
		item.Name = *patch.Name
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.ExpirationDate != nil {
		item.ExpirationDate = patch.ExpirationDate
	}

	item, err = s.groceryStore.Update(ctx, item)
	if errors.Is(err, model.ErrNotFound) {
		return model.GroceryItem{}, apperrors.NewErrGroceryItemNotFound()
	}
	if err != nil {
		return model.GroceryItem{}, fmt.Errorf("failed to update grocery item: %w", err)
	}
	return item, nil
}

// Delete removes a pantry item of user.
func (s *Grocery) Delete(ctx context.Context, user model.User, id uuid.UUID) error {
	err := s.groceryStore.Delete(ctx, user.ID, id)
	if errors.Is(err, model.ErrNotFound) {
		return apperrors.NewErrGroceryItemNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to delete grocery item: %w", err)
	}
	return nil
}

func newGroceryItem(user model.User, draft GroceryDraft) (model.GroceryItem, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return model.GroceryItem{}, apperrors.NewErrValidation("name is required")
	}
	quantity := 1.0
	if draft.Quantity != nil {
		quantity = *draft.Quantity
	}
	return model.GroceryItem{
		ID:             uuid.New(),
		UserID:         user.ID,
		Name:           draft.Name,
		Quantity:       quantity,
		Unit:           draft.Unit,
		Category:       draft.Category,
		ExpirationDate: draft.ExpirationDate,
	}, nil
}
