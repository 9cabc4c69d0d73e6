package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is the account kind of an identity.
type Role string

const (
	// RoleClient is a regular meal-planning user.
	RoleClient Role = "client"
	// RoleCoach is a fitness coach that can link clients.
	RoleCoach Role = "coach"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleCoach
}

// UserStore defines persistence operations for identities.
// Emails are always stored and queried lower-cased.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByClientCode(ctx context.Context, code string) (User, error)
	GetByFamilyID(ctx context.Context, familyID uuid.UUID) ([]User, error)
	Create(ctx context.Context, user User) (User, error)
	SetFamily(ctx context.Context, userID uuid.UUID, familyID *uuid.UUID) error
}

// User is an account together with its authentication material.
type User struct {
	ID                  uuid.UUID      `json:"id"`
	Email               string         `json:"email"`
	Username            string         `json:"username"`
	FullName            string         `json:"full_name,omitempty"`
	PasswordHash        string         `json:"-"`
	Role                Role           `json:"role"`
	ClientCode          string         `json:"client_code,omitempty"`
	DietaryRestrictions []string       `json:"dietary_restrictions"`
	Preferences         map[string]any `json:"preferences"`
	FamilyID            *uuid.UUID     `json:"family_id"`
	CreatedAt           time.Time      `json:"created_at"`
}

// FamilyKey returns the hub partition key of the user's family group,
// or an empty string when the user does not belong to one.
func (u User) FamilyKey() string {
	if u.FamilyID == nil {
		return ""
	}
	return u.FamilyID.String()
}

// UserSummary is the public view of a user shown to coaches and clients.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name,omitempty"`
}

// Summary returns the public view of u.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, FullName: u.FullName}
}
