package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/dbx"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `u.id, u.email, u.username, u.full_name, u.password_hash, u.role, u.client_code,
	u.dietary_restrictions, u.preferences, u.family_id, u.created_at`

type UserRepository struct {
	db dbx.DBTX
}

func NewUserRepository(db dbx.DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		user         model.User
		role         string
		clientCode   sql.NullString
		restrictions []byte
		preferences  []byte
		familyID     uuid.NullUUID
	)
	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.FullName, &user.PasswordHash, &role, &clientCode,
		&restrictions, &preferences, &familyID, &user.CreatedAt,
	)
	if err != nil {
		return model.User{}, err
	}

	user.Role = model.Role(role)
	user.ClientCode = clientCode.String
	user.FamilyID = uuidPtr(familyID)
	user.DietaryRestrictions = []string{}
	user.Preferences = map[string]any{}
	if err := decodeJSON(restrictions, &user.DietaryRestrictions); err != nil {
		return model.User{}, err
	}
	if err := decodeJSON(preferences, &user.Preferences); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserRepository) getOne(ctx context.Context, what, where string, arg any) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE ` + where
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by %s: %w", what, err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getOne(ctx, "email", `u.email = $1`, strings.ToLower(email))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.getOne(ctx, "id", `u.id = $1`, id)
}

func (r *UserRepository) GetByClientCode(ctx context.Context, code string) (model.User, error) {
	return r.getOne(ctx, "client code", `u.client_code = $1`, code)
}

func (r *UserRepository) GetByFamilyID(ctx context.Context, familyID uuid.UUID) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.family_id = $1 ORDER BY u.created_at, u.username`
	return queryUsers(ctx, r.db, query, familyID)
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	restrictions, err := jsonArg(user.DietaryRestrictions, "[]")
	if err != nil {
		return model.User{}, err
	}
	preferences, err := jsonArg(user.Preferences, "{}")
	if err != nil {
		return model.User{}, err
	}

	query := `INSERT INTO users AS u (id, email, username, full_name, password_hash, role, client_code,
			  dietary_restrictions, preferences, family_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, strings.ToLower(user.Email), user.Username, user.FullName, user.PasswordHash, string(user.Role),
		stringArg(user.ClientCode), restrictions, preferences, uuidArg(user.FamilyID),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrAlreadyExists
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return saved, nil
}

// SetFamily moves the user into familyID, or out of any family when nil.
func (r *UserRepository) SetFamily(ctx context.Context, userID uuid.UUID, familyID *uuid.UUID) error {
	const query = `UPDATE users SET family_id = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, uuidArg(familyID))
	if err != nil {
		return fmt.Errorf("failed to set user family: %w", err)
	}
	return requireAffected(res)
}

func queryUsers(ctx context.Context, db dbx.DBTX, query string, args ...any) ([]model.User, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// requireAffected maps a statement that touched no rows to model.ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
