package handler

import (
	"context"
	"net/http"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/service"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Auth handles HTTP endpoints for accounts.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an account from a JSON body.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var params service.RegisterParams
	if err := decodeJSON(r, &params); err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Debug("Auth handler: processing registration request", "email", params.Email)

	user, err := h.authService.Register(r.Context(), params)
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"email", params.Email,
			"error", err.Error())
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("Auth handler: registration completed", "user_id", user.ID)
	writeJSON(w, http.StatusOK, user)
}

// Login exchanges form credentials (username holds the email) for a bearer token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handleError(w, h.logger, apperrors.NewErrValidation("invalid form body"))
		return
	}
	email := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if email == "" || password == "" {
		handleError(w, h.logger, apperrors.NewErrValidation("username and password are required"))
		return
	}

	accessToken, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"email", email,
			"error", err.Error())
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: accessToken, TokenType: "bearer"})
}

// Me returns the authenticated account.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
