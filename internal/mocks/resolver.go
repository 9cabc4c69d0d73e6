package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// Resolver is a mock of the bearer token resolver used by the HTTP middleware.
type Resolver struct {
	mock.Mock
}

// NewResolver creates a Resolver mock that asserts its expectations on cleanup.
func NewResolver(t testingT) *Resolver {
	m := &Resolver{}
	register(&m.Mock, t)
	return m
}

func (m *Resolver) Resolve(ctx context.Context, token string) (model.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.User), args.Error(1)
}
