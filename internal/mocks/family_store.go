package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// FamilyStore is a mock of model.FamilyStore.
type FamilyStore struct {
	mock.Mock
}

var _ model.FamilyStore = (*FamilyStore)(nil)

// NewFamilyStore creates a FamilyStore mock that asserts its expectations on cleanup.
func NewFamilyStore(t testingT) *FamilyStore {
	m := &FamilyStore{}
	register(&m.Mock, t)
	return m
}

func (m *FamilyStore) Create(ctx context.Context, family model.Family) (model.Family, error) {
	args := m.Called(ctx, family)
	if fn, ok := args.Get(0).(func(model.Family) model.Family); ok {
		return fn(family), args.Error(1)
	}
	return args.Get(0).(model.Family), args.Error(1)
}

func (m *FamilyStore) GetByID(ctx context.Context, id uuid.UUID) (model.Family, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Family), args.Error(1)
}

func (m *FamilyStore) GetByInviteCode(ctx context.Context, code string) (model.Family, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(model.Family), args.Error(1)
}
