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

var _ model.FamilyStore = (*FamilyRepository)(nil)

type FamilyRepository struct {
	db dbx.DBTX
}

func NewFamilyRepository(db dbx.DBTX) *FamilyRepository {
	return &FamilyRepository{db: db}
}

func (r *FamilyRepository) Create(ctx context.Context, family model.Family) (model.Family, error) {
	const query = `INSERT INTO families (id, name, invite_code) VALUES ($1, $2, $3)
			  RETURNING id, name, invite_code, created_at`

	var saved model.Family
	err := r.db.QueryRowContext(ctx, query, family.ID, family.Name, family.InviteCode).
		Scan(&saved.ID, &saved.Name, &saved.InviteCode, &saved.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Family{}, model.ErrAlreadyExists
		}
		return model.Family{}, fmt.Errorf("failed to create family: %w", err)
	}
	return saved, nil
}

func (r *FamilyRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Family, error) {
	return r.getOne(ctx, "id", `id = $1`, id)
}

func (r *FamilyRepository) GetByInviteCode(ctx context.Context, code string) (model.Family, error) {
	return r.getOne(ctx, "invite code", `invite_code = $1`, code)
}

func (r *FamilyRepository) getOne(ctx context.Context, what, where string, arg any) (model.Family, error) {
	query := `SELECT id, name, invite_code, created_at FROM families WHERE ` + where

	var family model.Family
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&family.ID, &family.Name, &family.InviteCode, &family.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Family{}, model.ErrNotFound
		}
		return model.Family{}, fmt.Errorf("failed to get family by %s: %w", what, err)
	}
	return family, nil
}
