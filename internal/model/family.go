package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FamilyStore defines persistence operations for family groups.
type FamilyStore interface {
	Create(ctx context.Context, family Family) (Family, error)
	GetByID(ctx context.Context, id uuid.UUID) (Family, error)
	GetByInviteCode(ctx context.Context, code string) (Family, error)
}

// Family groups identities that share a real-time sync channel.
type Family struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// FamilyView is a family together with its members.
type FamilyView struct {
	Family
	Members []UserSummary `json:"members"`
}
