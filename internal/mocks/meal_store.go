package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// MealStore is a mock of model.MealStore.
type MealStore struct {
	mock.Mock
}

var _ model.MealStore = (*MealStore)(nil)

// NewMealStore creates a MealStore mock that asserts its expectations on cleanup.
func NewMealStore(t testingT) *MealStore {
	m := &MealStore{}
	register(&m.Mock, t)
	return m
}

func (m *MealStore) Create(ctx context.Context, meal model.Meal) (model.Meal, error) {
	args := m.Called(ctx, meal)
	if fn, ok := args.Get(0).(func(model.Meal) model.Meal); ok {
		return fn(meal), args.Error(1)
	}
	return args.Get(0).(model.Meal), args.Error(1)
}

func (m *MealStore) CreateMany(ctx context.Context, meals []model.Meal) ([]model.Meal, error) {
	args := m.Called(ctx, meals)
	if fn, ok := args.Get(0).(func([]model.Meal) []model.Meal); ok {
		return fn(meals), args.Error(1)
	}
	out, _ := args.Get(0).([]model.Meal)
	return out, args.Error(1)
}

func (m *MealStore) GetByID(ctx context.Context, userID, id uuid.UUID) (model.Meal, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(model.Meal), args.Error(1)
}

func (m *MealStore) List(ctx context.Context, filter model.MealFilter) ([]model.Meal, error) {
	args := m.Called(ctx, filter)
	meals, _ := args.Get(0).([]model.Meal)
	return meals, args.Error(1)
}

func (m *MealStore) Update(ctx context.Context, meal model.Meal) (model.Meal, error) {
	args := m.Called(ctx, meal)
	if fn, ok := args.Get(0).(func(model.Meal) model.Meal); ok {
		return fn(meal), args.Error(1)
	}
	return args.Get(0).(model.Meal), args.Error(1)
}

func (m *MealStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
