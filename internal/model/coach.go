package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CoachLinkStore defines persistence operations for coach-client links.
// A client has at most one coach.
type CoachLinkStore interface {
	Create(ctx context.Context, link CoachLink) (CoachLink, error)
	GetByClientID(ctx context.Context, clientID uuid.UUID) (CoachLink, error)
	GetByCoachAndClient(ctx context.Context, coachID, clientID uuid.UUID) (CoachLink, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListClients(ctx context.Context, coachID uuid.UUID) ([]User, error)
}

// CoachLink associates a coach with one of their clients.
type CoachLink struct {
	ID        uuid.UUID `json:"id"`
	CoachID   uuid.UUID `json:"coach_id"`
	ClientID  uuid.UUID `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
}
