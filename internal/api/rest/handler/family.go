package handler

import (
	"context"
	"net/http"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// FamilyService defines family group operations.
type FamilyService interface {
	Create(ctx context.Context, user model.User, name string) (model.FamilyView, error)
	Join(ctx context.Context, user model.User, inviteCode string) (model.FamilyView, error)
	Get(ctx context.Context, user model.User) (model.FamilyView, error)
	Leave(ctx context.Context, user model.User) error
}

// Family handles HTTP endpoints for family groups.
type Family struct {
	familyService  FamilyService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewFamily creates a new Family handler.
func NewFamily(familyService FamilyService, contextManager model.ContextManager, logger *logger.Logger) *Family {
	return &Family{familyService: familyService, contextManager: contextManager, logger: logger}
}

// Create starts a new family with the caller as its first member.
func (h *Family) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	view, err := h.familyService.Create(r.Context(), user, req.Name)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Join moves the caller into the family with the given invite code.
func (h *Family) Join(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req struct {
		InviteCode string `json:"invite_code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	view, err := h.familyService.Join(r.Context(), user, req.InviteCode)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Get returns the caller's family and its members.
func (h *Family) Get(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	view, err := h.familyService.Get(r.Context(), user)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Leave removes the caller from their family.
func (h *Family) Leave(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.familyService.Leave(r.Context(), user); err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeMessage(w, "Left family")
}
