package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/credential"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

const (
	minPasswordBytes = 8
	maxCodeAttempts  = 10
)

// RegisterParams holds account registration input.
type RegisterParams struct {
	Email               string         `json:"email"`
	Username            string         `json:"username"`
	FullName            string         `json:"full_name"`
	Password            string         `json:"password"`
	Role                model.Role     `json:"role"`
	DietaryRestrictions []string       `json:"dietary_restrictions"`
	Preferences         map[string]any `json:"preferences"`
}

// Auth handles account registration and password login.
type Auth struct {
	userStore    model.UserStore
	hasher       *credential.Hasher
	tokenManager model.TokenManager
	tokenTTL     time.Duration
	generateCode func() (string, error)
	logger       *logger.Logger
}

// NewAuth creates an account service issuing tokens valid for tokenTTL.
func NewAuth(
	userStore model.UserStore,
	hasher *credential.Hasher,
	tokenManager model.TokenManager,
	tokenTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		tokenTTL:     tokenTTL,
		generateCode: credential.GenerateCode,
		logger:       logger,
	}
}

// Register validates params and creates a new identity with a unique client code.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	email, err := normalizeEmail(params.Email)
	if err != nil {
		return model.User{}, err
	}
	if strings.TrimSpace(params.Username) == "" {
		return model.User{}, apperrors.NewErrValidation("username is required")
	}
	if params.Role == "" {
		params.Role = model.RoleClient
	}
	if !params.Role.Valid() {
		return model.User{}, apperrors.NewErrValidation("role must be %q or %q", model.RoleClient, model.RoleCoach)
	}
	if err := validatePassword(params.Password); err != nil {
		return model.User{}, err
	}

	a.logger.Debug("Auth service: starting user registration", "email", email)

	_, err = a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: user already exists", "email", email)
		return model.User{}, apperrors.NewErrEmailIsTaken()
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	code, err := a.uniqueClientCode(ctx)
	if err != nil {
		a.logger.Error("Auth service: failed to generate client code",
			"email", email,
			"error", err.Error())
		return model.User{}, err
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, err
	}

	restrictions := params.DietaryRestrictions
	if restrictions == nil {
		restrictions = []string{}
	}
	preferences := params.Preferences
	if preferences == nil {
		preferences = map[string]any{}
	}

	user, err := a.userStore.Create(ctx, model.User{
		ID:                  uuid.New(),
		Email:               email,
		Username:            strings.TrimSpace(params.Username),
		FullName:            params.FullName,
		PasswordHash:        hash,
		Role:                params.Role,
		ClientCode:          code,
		DietaryRestrictions: restrictions,
		Preferences:         preferences,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.User{}, apperrors.NewErrEmailIsTaken()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"role", user.Role)

	return user, nil
}

// Login checks the password of the identity with the given email and issues a token.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Debug("Auth service: login for unknown email", "email", email)
		return "", apperrors.NewErrInvalidCredentials()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Debug("Auth service: wrong password", "user_id", user.ID)
		return "", apperrors.NewErrInvalidCredentials()
	}

	token, err := a.tokenManager.Issue(user.Email, a.tokenTTL)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

func (a *Auth) uniqueClientCode(ctx context.Context) (string, error) {
	for range maxCodeAttempts {
		code, err := a.generateCode()
		if err != nil {
			return "", err
		}
		_, err = a.userStore.GetByClientCode(ctx, code)
		if errors.Is(err, model.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check client code: %w", err)
		}
		a.logger.Debug("Auth service: client code collision, retrying")
	}
	return "", fmt.Errorf("no unique client code after %d attempts", maxCodeAttempts)
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperrors.NewErrValidation("value is not a valid email address")
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordBytes {
		return apperrors.NewErrValidation("Password must be at least %d characters", minPasswordBytes)
	}
	if len(password) > credential.MaxPasswordBytes {
		return apperrors.NewErrValidation("Password must be at most %d characters", credential.MaxPasswordBytes)
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	switch {
	case !upper:
		return apperrors.NewErrValidation("Password must contain at least one uppercase letter")
	case !lower:
		return apperrors.NewErrValidation("Password must contain at least one lowercase letter")
	case !digit:
		return apperrors.NewErrValidation("Password must contain at least one number")
	}
	return nil
}
