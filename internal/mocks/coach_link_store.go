package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// CoachLinkStore is a mock of model.CoachLinkStore.
type CoachLinkStore struct {
	mock.Mock
}

var _ model.CoachLinkStore = (*CoachLinkStore)(nil)

// NewCoachLinkStore creates a CoachLinkStore mock that asserts its expectations on cleanup.
func NewCoachLinkStore(t testingT) *CoachLinkStore {
	m := &CoachLinkStore{}
	register(&m.Mock, t)
	return m
}

func (m *CoachLinkStore) Create(ctx context.Context, link model.CoachLink) (model.CoachLink, error) {
	args := m.Called(ctx, link)
	if fn, ok := args.Get(0).(func(model.CoachLink) model.CoachLink); ok {
		return fn(link), args.Error(1)
	}
	return args.Get(0).(model.CoachLink), args.Error(1)
}

func (m *CoachLinkStore) GetByClientID(ctx context.Context, clientID uuid.UUID) (model.CoachLink, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(model.CoachLink), args.Error(1)
}

func (m *CoachLinkStore) GetByCoachAndClient(ctx context.Context, coachID, clientID uuid.UUID) (model.CoachLink, error) {
	args := m.Called(ctx, coachID, clientID)
	return args.Get(0).(model.CoachLink), args.Error(1)
}

func (m *CoachLinkStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CoachLinkStore) ListClients(ctx context.Context, coachID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, coachID)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}
