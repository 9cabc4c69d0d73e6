package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// RecipeStore is a mock of model.RecipeStore.
type RecipeStore struct {
	mock.Mock
}

var _ model.RecipeStore = (*RecipeStore)(nil)

// NewRecipeStore creates a RecipeStore mock that asserts its expectations on cleanup.
func NewRecipeStore(t testingT) *RecipeStore {
	m := &RecipeStore{}
	register(&m.Mock, t)
	return m
}

func (m *RecipeStore) Create(ctx context.Context, recipe model.Recipe) (model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if fn, ok := args.Get(0).(func(model.Recipe) model.Recipe); ok {
		return fn(recipe), args.Error(1)
	}
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *RecipeStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (model.Recipe, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *RecipeStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *RecipeStore) List(ctx context.Context, filter model.RecipeFilter) ([]model.Recipe, error) {
	args := m.Called(ctx, filter)
	recipes, _ := args.Get(0).([]model.Recipe)
	return recipes, args.Error(1)
}

func (m *RecipeStore) Update(ctx context.Context, recipe model.Recipe) (model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if fn, ok := args.Get(0).(func(model.Recipe) model.Recipe); ok {
		return fn(recipe), args.Error(1)
	}
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *RecipeStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
