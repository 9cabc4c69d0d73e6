package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/dbx"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

var _ model.CoachLinkStore = (*CoachLinkRepository)(nil)

type CoachLinkRepository struct {
	db dbx.DBTX
}

func NewCoachLinkRepository(db dbx.DBTX) *CoachLinkRepository {
	return &CoachLinkRepository{db: db}
}

// Create links a client to a coach. A client that already has a coach
// yields model.ErrAlreadyExists.
func (r *CoachLinkRepository) Create(ctx context.Context, link model.CoachLink) (model.CoachLink, error) {
	const query = `INSERT INTO coach_clients (id, coach_id, client_id) VALUES ($1, $2, $3)
			  RETURNING id, coach_id, client_id, created_at`

	var saved model.CoachLink
	err := r.db.QueryRowContext(ctx, query, link.ID, link.CoachID, link.ClientID).
		Scan(&saved.ID, &saved.CoachID, &saved.ClientID, &saved.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.CoachLink{}, model.ErrAlreadyExists
		}
		return model.CoachLink{}, fmt.Errorf("failed to create coach link: %w", err)
	}
	return saved, nil
}

func (r *CoachLinkRepository) GetByClientID(ctx context.Context, clientID uuid.UUID) (model.CoachLink, error) {
	return r.getOne(ctx, `client_id = $1`, clientID)
}

func (r *CoachLinkRepository) GetByCoachAndClient(ctx context.Context, coachID, clientID uuid.UUID) (model.CoachLink, error) {
	return r.getOne(ctx, `coach_id = $1 AND client_id = $2`, coachID, clientID)
}

func (r *CoachLinkRepository) getOne(ctx context.Context, where string, args ...any) (model.CoachLink, error) {
	query := `SELECT id, coach_id, client_id, created_at FROM coach_clients WHERE ` + where

	var link model.CoachLink
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&link.ID, &link.CoachID, &link.ClientID, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CoachLink{}, model.ErrNotFound
		}
		return model.CoachLink{}, fmt.Errorf("failed to get coach link: %w", err)
	}
	return link, nil
}

func (r *CoachLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coach_clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coach link: %w", err)
	}
	return requireAffected(res)
}

// ListClients returns the clients of coachID in link order.
func (r *CoachLinkRepository) ListClients(ctx context.Context, coachID uuid.UUID) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u
			  JOIN coach_clients c ON c.client_id = u.id
			  WHERE c.coach_id = $1
			  ORDER BY c.created_at, u.username`
	return queryUsers(ctx, r.db, query, coachID)
}
