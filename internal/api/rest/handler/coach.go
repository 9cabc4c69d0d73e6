package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// CoachService defines coach and client link operations.
type CoachService interface {
	Link(ctx context.Context, coach model.User, clientEmail, clientCode string) (model.User, error)
	Unlink(ctx context.Context, coach model.User, clientID uuid.UUID) error
	Clients(ctx context.Context, coach model.User) ([]model.UserSummary, error)
	ClientMeals(ctx context.Context, coach model.User, clientID uuid.UUID) ([]model.Meal, error)
	ClientRecipes(ctx context.Context, coach model.User, clientID uuid.UUID) ([]model.Recipe, error)
	MyCoach(ctx context.Context, client model.User) (model.UserSummary, error)
}

type linkRequest struct {
	ClientEmail string `json:"client_email"`
	ClientCode  string `json:"client_code"`
}

// Coach handles HTTP endpoints for coaches and their clients.
type Coach struct {
	coachService   CoachService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewCoach creates a new Coach handler.
func NewCoach(coachService CoachService, contextManager model.ContextManager, logger *logger.Logger) *Coach {
	return &Coach{coachService: coachService, contextManager: contextManager, logger: logger}
}

// Link connects the calling coach with a client.
func (h *Coach) Link(w http.ResponseWriter, r *http.Request) {
	coach, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req linkRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	client, err := h.coachService.Link(r.Context(), coach, req.ClientEmail, req.ClientCode)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeMessage(w, "Successfully linked to client "+client.Username)
}

// Unlink removes the link to a client.
func (h *Coach) Unlink(w http.ResponseWriter, r *http.Request) {
	coach, clientID, ok := userAndID(w, r, h.contextManager, h.logger, "client_id")
	if !ok {
		return
	}

	if err := h.coachService.Unlink(r.Context(), coach, clientID); err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeMessage(w, "Successfully unlinked client")
}

// Clients lists the calling coach's clients.
func (h *Coach) Clients(w http.ResponseWriter, r *http.Request) {
	coach, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	clients, err := h.coachService.Clients(r.Context(), coach)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// ClientMeals lists a linked client's meals.
func (h *Coach) ClientMeals(w http.ResponseWriter, r *http.Request) {
	coach, clientID, ok := userAndID(w, r, h.contextManager, h.logger, "client_id")
	if !ok {
		return
	}

	meals, err := h.coachService.ClientMeals(r.Context(), coach, clientID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

// ClientRecipes lists a linked client's recipes.
func (h *Coach) ClientRecipes(w http.ResponseWriter, r *http.Request) {
	coach, clientID, ok := userAndID(w, r, h.contextManager, h.logger, "client_id")
	if !ok {
		return
	}

	recipes, err := h.coachService.ClientRecipes(r.Context(), coach, clientID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// MyCoach returns the coach the caller is linked to.
func (h *Coach) MyCoach(w http.ResponseWriter, r *http.Request) {
	client, err := currentUser(h.contextManager, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	coach, err := h.coachService.MyCoach(r.Context(), client)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, coach)
}
