package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// Authenticator resolves bearer tokens into identities and guards access by
// role and family membership.
type Authenticator struct {
	tokens model.TokenManager
	users  model.UserStore
	logger *logger.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens model.TokenManager, users model.UserStore, logger *logger.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, logger: logger}
}

// Resolve verifies token and loads the identity named by its subject.
// It returns model.ErrUnauthenticated when the token is invalid or the identity is gone.
func (a *Authenticator) Resolve(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, model.ErrUnauthenticated
	}

	subject, err := a.tokens.Verify(token)
	if err != nil {
		a.logger.Debug("Authenticator: token rejected")
		return model.User{}, model.ErrUnauthenticated
	}

	user, err := a.users.GetByEmail(ctx, strings.ToLower(subject))
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Debug("Authenticator: token subject has no identity", "subject", subject)
		return model.User{}, model.ErrUnauthenticated
	}
	if err != nil {
		a.logger.Error("Authenticator: failed to load identity",
			"subject", subject,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// RequireRole fails with model.ErrForbidden unless user has role.
func (a *Authenticator) RequireRole(user model.User, role model.Role) error {
	if user.Role != role {
		return model.ErrForbidden
	}
	return nil
}

// RequireFamilyMembership fails with model.ErrForbidden unless user belongs
// to the family group familyID. A user without a family never matches.
func (a *Authenticator) RequireFamilyMembership(user model.User, familyID string) error {
	key := user.FamilyKey()
	if key == "" || !strings.EqualFold(key, familyID) {
		return model.ErrForbidden
	}
	return nil
}
