package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/mocks"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/testutil"
)

func echoGrocery(in model.GroceryItem) model.GroceryItem { return in }

func newTestGrocery(t *testing.T) (*Grocery, *mocks.GroceryStore) {
	t.Helper()
	store := mocks.NewGroceryStore(t)
	s := NewGrocery(store, testutil.MakeNoopLogger())
	s.now = func() time.Time { return time.Date(2024, 5, 9, 12, 0, 0, 0, time.UTC) }
	return s, store
}

func TestGrocery_Create_DefaultsQuantity(t *testing.T) {
	s, store := newTestGrocery(t)
	user := model.User{ID: uuid.New()}

	store.On("Create", mock.Anything, mock.Anything).Return(echoGrocery, nil)

	item, err := s.Create(context.Background(), user, GroceryDraft{Name: "Eggs"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, user.ID, item.UserID)
}

func TestGrocery_Create_RequiresName(t *testing.T) {
	s, _ := newTestGrocery(t)

	_, err := s.Create(context.Background(), model.User{}, GroceryDraft{Name: "  "})
	assertAPIStatus(t, err, http.StatusUnprocessableEntity)
}

func TestGrocery_List_ExpiringSoon(t *testing.T) {
	s, store := newTestGrocery(t)
	user := model.User{ID: uuid.New()}

	store.On("List", mock.Anything, mock.MatchedBy(func(f model.GroceryFilter) bool {
		return f.UserID == user.ID &&
			f.Category == "dairy" &&
			f.ExpiresOnOrFrom == nil &&
			f.ExpiresOnOrTo.String() == "2024-05-16" &&
			f.Limit == 100
	})).Return([]model.GroceryItem{}, nil)

	_, err := s.List(context.Background(), user, GroceryQuery{Category: "dairy", ExpiringSoon: true})
	require.NoError(t, err)
}

func TestGrocery_ExpiringSoon(t *testing.T) {
	s, store := newTestGrocery(t)
	user := model.User{ID: uuid.New()}

	store.On("List", mock.Anything, mock.MatchedBy(func(f model.GroceryFilter) bool {
		return f.ExpiresOnOrFrom.String() == "2024-05-09" && f.ExpiresOnOrTo.String() == "2024-05-12"
	})).Return([]model.GroceryItem{{Name: "Milk"}}, nil)

	items, err := s.ExpiringSoon(context.Background(), user, 3)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = s.ExpiringSoon(context.Background(), user, -1)
	assertAPIStatus(t, err, http.StatusUnprocessableEntity)
}

func TestGrocery_CreateBulk(t *testing.T) {
	s, store := newTestGrocery(t)
	user := model.User{ID: uuid.New()}
	two := 2.0

	store.On("CreateMany", mock.Anything, mock.MatchedBy(func(items []model.GroceryItem) bool {
		return len(items) == 2 && items[1].Quantity == 2
	})).Return(func(in []model.GroceryItem) []model.GroceryItem { return in }, nil)

	items, err := s.CreateBulk(context.Background(), user, []GroceryDraft{{Name: "Eggs"}, {Name: "Oats", Quantity: &two}})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestGrocery_CreateBulk_RejectsInvalidItem(t *testing.T) {
	s, _ := newTestGrocery(t)

	_, err := s.CreateBulk(context.Background(), model.User{}, []GroceryDraft{{Name: "Eggs"}, {}})
	assertAPIStatus(t, err, http.StatusUnprocessableEntity)
}

func TestGrocery_UpdateAndDelete(t *testing.T) {
	s, store := newTestGrocery(t)
	user := model.User{ID: uuid.New()}
	existing := model.GroceryItem{ID: uuid.New(), UserID: user.ID, Name: "Eggs", Quantity: 12}

	store.On("GetByID", mock.Anything, user.ID, existing.ID).Return(existing, nil)
	store.On("Update", mock.Anything, mock.Anything).Return(echoGrocery, nil)

	qty := 6.0
	got, err := s.Update(context.Background(), user, existing.ID, model.GroceryPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 6.0, got.Quantity)
	assert.Equal(t, "Eggs", got.Name)

	missing := uuid.New()
	store.On("Delete", mock.Anything, user.ID, missing).Return(model.ErrNotFound)
	assertAPIStatus(t, s.Delete(context.Background(), user, missing), http.StatusNotFound)
}
