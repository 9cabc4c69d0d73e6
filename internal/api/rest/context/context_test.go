package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

func TestManager_SetAndGetUser(t *testing.T) {
	t.Parallel()

	m := NewManager()
	user := model.User{ID: uuid.New(), Email: "a@example.com"}

	ctx := m.SetUserToContext(context.Background(), user)
	got, ok := m.GetUserFromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, user, got)
}

func TestManager_GetUser_Missing(t *testing.T) {
	t.Parallel()

	m := NewManager()

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{name: "empty context", ctx: context.Background()},
		{name: "foreign value under similar key", ctx: context.WithValue(context.Background(), "user", model.User{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := m.GetUserFromContext(tt.ctx)
			assert.False(t, ok)
		})
	}
}
