package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// GroceryStore is a mock of model.GroceryStore.
type GroceryStore struct {
	mock.Mock
}

var _ model.GroceryStore = (*GroceryStore)(nil)

// NewGroceryStore creates a GroceryStore mock that asserts its expectations on cleanup.
func NewGroceryStore(t testingT) *GroceryStore {
	m := &GroceryStore{}
	register(&m.Mock, t)
	return m
}

func (m *GroceryStore) Create(ctx context.Context, item model.GroceryItem) (model.GroceryItem, error) {
	args := m.Called(ctx, item)
	if fn, ok := args.Get(0).(func(model.GroceryItem) model.GroceryItem); ok {
		return fn(item), args.Error(1)
	}
	return args.Get(0).(model.GroceryItem), args.Error(1)
}

func (m *GroceryStore) CreateMany(ctx context.Context, items []model.GroceryItem) ([]model.GroceryItem, error) {
	args := m.Called(ctx, items)
	if fn, ok := args.Get(0).(func([]model.GroceryItem) []model.GroceryItem); ok {
		return fn(items), args.Error(1)
	}
	out, _ := args.Get(0).([]model.GroceryItem)
	return out, args.Error(1)
}

func (m *GroceryStore) GetByID(ctx context.Context, userID, id uuid.UUID) (model.GroceryItem, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(model.GroceryItem), args.Error(1)
}

func (m *GroceryStore) List(ctx context.Context, filter model.GroceryFilter) ([]model.GroceryItem, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]model.GroceryItem)
	return items, args.Error(1)
}

func (m *GroceryStore) Update(ctx context.Context, item model.GroceryItem) (model.GroceryItem, error) {
	args := m.Called(ctx, item)
	if fn, ok := args.Get(0).(func(model.GroceryItem) model.GroceryItem); ok {
		return fn(item), args.Error(1)
	}
	return args.Get(0).(model.GroceryItem), args.Error(1)
}

func (m *GroceryStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
