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

var _ model.MealStore = (*MealRepository)(nil)

const mealSelect = `SELECT m.id, m.user_id, m.date, m.meal_type, m.recipe_id, m.notes, m.planned, m.created_at, ` +
	recipeColumns + ` FROM meals m LEFT JOIN recipes r ON r.id = m.recipe_id`

type MealRepository struct {
	db *sql.DB
}

func NewMealRepository(db *sql.DB) *MealRepository {
	return &MealRepository{db: db}
}

func scanMeal(scanner rowScanner) (model.Meal, error) {
	var (
		meal     model.Meal
		recipeID uuid.NullUUID
		recipe   recipeRow
	)
	dest := append([]any{
		&meal.ID, &meal.UserID, &meal.Date, &meal.MealType, &recipeID, &meal.Notes, &meal.Planned, &meal.CreatedAt,
	}, recipe.dest()...)
	if err := scanner.Scan(dest...); err != nil {
		return model.Meal{}, err
	}

	meal.RecipeID = uuidPtr(recipeID)
	embedded, err := recipe.recipe()
	if err != nil {
		return model.Meal{}, err
	}
	meal.Recipe = embedded
	return meal, nil
}

func getMeal(ctx context.Context, db dbx.DBTX, userID, id uuid.UUID) (model.Meal, error) {
	meal, err := scanMeal(db.QueryRowContext(ctx, mealSelect+` WHERE m.id = $1 AND m.user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Meal{}, model.ErrNotFound
		}
		return model.Meal{}, fmt.Errorf("failed to get meal: %w", err)
	}
	return meal, nil
}

func insertMeal(ctx context.Context, db dbx.DBTX, meal model.Meal) (model.Meal, error) {
	const query = `INSERT INTO meals (id, user_id, date, meal_type, recipe_id, notes, planned)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := db.ExecContext(ctx, query,
		meal.ID, meal.UserID, meal.Date, meal.MealType, uuidArg(meal.RecipeID), meal.Notes, meal.Planned)
	if err != nil {
		return model.Meal{}, fmt.Errorf("failed to create meal: %w", err)
	}
	return getMeal(ctx, db, meal.UserID, meal.ID)
}

func (r *MealRepository) Create(ctx context.Context, meal model.Meal) (model.Meal, error) {
	return insertMeal(ctx, r.db, meal)
}

// CreateMany inserts all meals or none.
func (r *MealRepository) CreateMany(ctx context.Context, meals []model.Meal) ([]model.Meal, error) {
	created := make([]model.Meal, 0, len(meals))
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, meal := range meals {
			saved, err := insertMeal(ctx, tx, meal)
			if err != nil {
				return err
			}
			created = append(created, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *MealRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (model.Meal, error) {
	return getMeal(ctx, r.db, userID, id)
}

// List returns meals ordered by date then meal type, or newest first when filter.Newest is set.
func (r *MealRepository) List(ctx context.Context, filter model.MealFilter) ([]model.Meal, error) {
	q := newQuery(mealSelect+` WHERE m.user_id = $1`, filter.UserID)
	if filter.From != nil {
		q.write(` AND m.date >= %s`, q.arg(*filter.From))
	}
	if filter.To != nil {
		q.write(` AND m.date <= %s`, q.arg(*filter.To))
	}
	if filter.MealType != "" {
		q.write(` AND m.meal_type = %s`, q.arg(filter.MealType))
	}
	if filter.Newest {
		q.write(` ORDER BY m.date DESC, m.meal_type`)
	} else {
		q.write(` ORDER BY m.date, m.meal_type`)
	}
	q.page(filter.Offset, filter.Limit)

	rows, err := r.db.QueryContext(ctx, q.String(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	meals := []model.Meal{}
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}
	return meals, nil
}

func (r *MealRepository) Update(ctx context.Context, meal model.Meal) (model.Meal, error) {
	const query = `UPDATE meals SET date = $3, meal_type = $4, recipe_id = $5, notes = $6, planned = $7
			  WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query,
		meal.ID, meal.UserID, meal.Date, meal.MealType, uuidArg(meal.RecipeID), meal.Notes, meal.Planned)
	if err != nil {
		return model.Meal{}, fmt.Errorf("failed to update meal: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return model.Meal{}, err
	}
	return getMeal(ctx, r.db, meal.UserID, meal.ID)
}

func (r *MealRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const query = `DELETE FROM meals WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	return requireAffected(res)
}
