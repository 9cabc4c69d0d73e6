package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/apperrors"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// Coach manages coach-client links and the coach's read access to client data.
type Coach struct {
	linkStore   model.CoachLinkStore
	userStore   model.UserStore
	mealStore   model.MealStore
	recipeStore model.RecipeStore
	auth        *Authenticator
	logger      *logger.Logger
}

// NewCoach creates a coach service.
func NewCoach(
	linkStore model.CoachLinkStore,
	userStore model.UserStore,
	mealStore model.MealStore,
	recipeStore model.RecipeStore,
	auth *Authenticator,
	logger *logger.Logger,
) *Coach {
	return &Coach{
		linkStore:   linkStore,
		userStore:   userStore,
		mealStore:   mealStore,
		recipeStore: recipeStore,
		auth:        auth,
		logger:      logger,
	}
}

// Link attaches the client identified by email and client code to coach.
func (s *Coach) Link(ctx context.Context, coach model.User, clientEmail, clientCode string) (model.User, error) {
	if err := s.auth.RequireRole(coach, model.RoleCoach); err != nil {
		return model.User{}, apperrors.NewErrForbidden("Only coaches can link clients")
	}

	client, err := s.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(clientEmail)))
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apperrors.NewErrNotFound("Client")
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get client: %w", err)
	}

	if client.ClientCode == "" || client.ClientCode != strings.TrimSpace(clientCode) {
		return model.User{}, apperrors.NewErrBadRequest("Invalid client code")
	}

	_, err = s.linkStore.GetByClientID(ctx, client.ID)
	if err == nil {
		return model.User{}, apperrors.NewErrBadRequest("Client is already linked to a coach")
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get client link: %w", err)
	}

	_, err = s.linkStore.Create(ctx, model.CoachLink{
		ID:       uuid.New(),
		CoachID:  coach.ID,
		ClientID: client.ID,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.User{}, apperrors.NewErrBadRequest("Client is already linked to a coach")
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create client link: %w", err)
	}

	s.logger.Info("Coach service: client linked",
		"coach_id", coach.ID,
		"client_id", client.ID)
	return client, nil
}

// Unlink removes the link between coach and clientID.
func (s *Coach) Unlink(ctx context.Context, coach model.User, clientID uuid.UUID) error {
	if err := s.auth.RequireRole(coach, model.RoleCoach); err != nil {
		return apperrors.NewErrForbidden("Only coaches can unlink clients")
	}

	link, err := s.linkStore.GetByCoachAndClient(ctx, coach.ID, clientID)
	if errors.Is(err, model.ErrNotFound) {
		return apperrors.NewErrNotFound("Client link")
	}
	if err != nil {
		return fmt.Errorf("failed to get client link: %w", err)
	}

	if err := s.linkStore.Delete(ctx, link.ID); err != nil {
		return fmt.Errorf("failed to delete client link: %w", err)
	}

	s.logger.Info("Coach service: client unlinked",
		"coach_id", coach.ID,
		"client_id", clientID)
	return nil
}

// Clients lists the clients linked to coach.
func (s *Coach) Clients(ctx context.Context, coach model.User) ([]model.UserSummary, error) {
	if err := s.auth.RequireRole(coach, model.RoleCoach); err != nil {
		return nil, apperrors.NewErrForbidden("Only coaches can view clients")
	}

	clients, err := s.linkStore.ListClients(ctx, coach.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	out := make([]model.UserSummary, 0, len(clients))
	for _, c := range clients {
		out = append(out, c.Summary())
	}
	return out, nil
}

// ClientMeals lists the meals of a client linked to coach, newest first.
func (s *Coach) ClientMeals(ctx context.Context, coach model.User, clientID uuid.UUID) ([]model.Meal, error) {
	if err := s.requireLinkedClient(ctx, coach, clientID, "Only coaches can view client meals"); err != nil {
		return nil, err
	}

	meals, err := s.mealStore.List(ctx, model.MealFilter{UserID: clientID, Newest: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list client meals: %w", err)
	}
	return meals, nil
}

// ClientRecipes lists the recipes of a client linked to coach, newest first.
func (s *Coach) ClientRecipes(ctx context.Context, coach model.User, clientID uuid.UUID) ([]model.Recipe, error) {
	if err := s.requireLinkedClient(ctx, coach, clientID, "Only coaches can view client recipes"); err != nil {
		return nil, err
	}

	recipes, err := s.recipeStore.List(ctx, model.RecipeFilter{OwnerID: clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to list client recipes: %w", err)
	}
	return recipes, nil
}

// MyCoach returns the coach of client.
func (s *Coach) MyCoach(ctx context.Context, client model.User) (model.UserSummary, error) {
	link, err := s.linkStore.GetByClientID(ctx, client.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.UserSummary{}, apperrors.New(http.StatusNotFound, "You are not linked to a coach")
	}
	if err != nil {
		return model.UserSummary{}, fmt.Errorf("failed to get coach link: %w", err)
	}

	coach, err := s.userStore.GetByID(ctx, link.CoachID)
	if err != nil {
		return model.UserSummary{}, fmt.Errorf("failed to get coach: %w", err)
	}
	return coach.Summary(), nil
}

func (s *Coach) requireLinkedClient(ctx context.Context, coach model.User, clientID uuid.UUID, roleMessage string) error {
	if err := s.auth.RequireRole(coach, model.RoleCoach); err != nil {
		return apperrors.NewErrForbidden(roleMessage)
	}

	_, err := s.linkStore.GetByCoachAndClient(ctx, coach.ID, clientID)
	if errors.Is(err, model.ErrNotFound) {
		return apperrors.NewErrForbidden("You are not linked to this client")
	}
	if err != nil {
		return fmt.Errorf("failed to get client link: %w", err)
	}
	return nil
}
