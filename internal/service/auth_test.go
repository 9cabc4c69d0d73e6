package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/credential"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/mocks"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/testutil"
)

func newTestAuth(t *testing.T) (*Auth, *mocks.UserStore, *mocks.TokenManager) {
	t.Helper()
	users := mocks.NewUserStore(t)
	tokens := mocks.NewTokenManager(t)
	a := NewAuth(users, credential.NewHasher(bcrypt.MinCost), tokens, time.Hour, testutil.MakeNoopLogger())
	return a, users, tokens
}

func echoUser(in model.User) model.User { return in }

func TestAuth_Register_Success(t *testing.T) {
	a, users, _ := newTestAuth(t)

	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(model.User{}, model.ErrNotFound)
	users.On("GetByClientCode", mock.Anything, mock.AnythingOfType("string")).Return(model.User{}, model.ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(echoUser, nil)

	user, err := a.Register(context.Background(), RegisterParams{
		Email:    "  Alice@Example.com ",
		Username: "alice",
		Password: "Secret123",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, model.RoleClient, user.Role)
	assert.Len(t, user.ClientCode, 16)
	assert.NotEqual(t, "Secret123", user.PasswordHash)
	assert.True(t, credential.NewHasher(bcrypt.MinCost).Verify("Secret123", user.PasswordHash))
	assert.NotNil(t, user.DietaryRestrictions)
	assert.NotNil(t, user.Preferences)
}

func TestAuth_Register_RetriesClientCodeOnCollision(t *testing.T) {
	a, users, _ := newTestAuth(t)
	codes := []string{"AAAAAAAAAAAAAAAA", "BBBBBBBBBBBBBBBB"}
	a.generateCode = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	users.On("GetByEmail", mock.Anything, "coach@example.com").Return(model.User{}, model.ErrNotFound)
	users.On("GetByClientCode", mock.Anything, "AAAAAAAAAAAAAAAA").Return(model.User{ID: uuid.New()}, nil).Once()
	users.On("GetByClientCode", mock.Anything, "BBBBBBBBBBBBBBBB").Return(model.User{}, model.ErrNotFound).Once()
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.ClientCode == "BBBBBBBBBBBBBBBB" && u.Role == model.RoleCoach
	})).Return(echoUser, nil)

	user, err := a.Register(context.Background(), RegisterParams{
		Email:    "coach@example.com",
		Username: "coach",
		Password: "Secret123",
		Role:     model.RoleCoach,
	})
	require.NoError(t, err)
	assert.Equal(t, "BBBBBBBBBBBBBBBB", user.ClientCode)
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	a, users, _ := newTestAuth(t)
	users.On("GetByEmail", mock.Anything, "a@b.co").Return(model.User{ID: uuid.New()}, nil)

	_, err := a.Register(context.Background(), RegisterParams{Email: "A@B.co", Username: "a", Password: "Secret123"})
	apiErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Message, "may already exist")
}

func TestAuth_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  RegisterParams
		message string
	}{
		{name: "bad email", params: RegisterParams{Email: "nope", Username: "a", Password: "Secret123"}, message: "email"},
		{name: "missing username", params: RegisterParams{Email: "a@b.co", Username: " ", Password: "Secret123"}, message: "username"},
		{name: "unknown role", params: RegisterParams{Email: "a@b.co", Username: "a", Password: "Secret123", Role: "admin"}, message: "role"},
		{name: "short password", params: RegisterParams{Email: "a@b.co", Username: "a", Password: "Se1"}, message: "at least 8"},
		{name: "long password", params: RegisterParams{Email: "a@b.co", Username: "a", Password: "Aa1" + strings.Repeat("x", 70)}, message: "at most 72"},
		{name: "no upper", params: RegisterParams{Email: "a@b.co", Username: "a", Password: "secret123"}, message: "uppercase"},
		{name: "no lower", params: RegisterParams{Email: "a@b.co", Username: "a", Password: "SECRET123"}, message: "lowercase"},
		{name: "no digit", params: RegisterParams{Email: "a@b.co", Username: "a", Password: "SecretPass"}, message: "number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestAuth(t)

			_, err := a.Register(context.Background(), tt.params)
			apiErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
			assert.Contains(t, apiErr.Message, tt.message)
		})
	}
}

func TestAuth_Login(t *testing.T) {
	hash, err := credential.NewHasher(bcrypt.MinCost).Hash("Secret123")
	require.NoError(t, err)
	stored := model.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}
	dbErr := errors.New("db down")

	tests := []struct {
		name      string
		email     string
		password  string
		setup     func(us *mocks.UserStore, tm *mocks.TokenManager)
		wantToken string
		wantAPI   int
		wantErr   error
	}{
		{
			name:     "success",
			email:    "Alice@Example.com",
			password: "Secret123",
			setup: func(us *mocks.UserStore, tm *mocks.TokenManager) {
				us.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
				tm.On("Issue", "alice@example.com", time.Hour).Return("signed", nil)
			},
			wantToken: "signed",
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "Secret123",
			setup: func(us *mocks.UserStore, tm *mocks.TokenManager) {
				us.On("GetByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, model.ErrNotFound)
			},
			wantAPI: http.StatusUnauthorized,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "Wrong1234",
			setup: func(us *mocks.UserStore, tm *mocks.TokenManager) {
				us.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
			},
			wantAPI: http.StatusUnauthorized,
		},
		{
			name:     "store failure",
			email:    "alice@example.com",
			password: "Secret123",
			setup: func(us *mocks.UserStore, tm *mocks.TokenManager) {
				us.On("GetByEmail", mock.Anything, "alice@example.com").Return(model.User{}, dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, users, tokens := newTestAuth(t)
			tt.setup(users, tokens)

			tok, err := a.Login(context.Background(), tt.email, tt.password)
			switch {
			case tt.wantAPI != 0:
				apiErr, ok := apperrors.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantAPI, apiErr.Status)
				assert.Equal(t, "Incorrect email or password", apiErr.Message)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, tok)
			}
		})
	}
}
