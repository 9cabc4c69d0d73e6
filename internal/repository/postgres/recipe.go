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

var _ model.RecipeStore = (*RecipeRepository)(nil)

const recipeColumns = `r.id, r.user_id, r.title, r.description, r.instructions, r.prep_time, r.cook_time,
	r.servings, r.difficulty, r.image_url, r.source_url, r.tags, r.ingredients, r.nutritional_info, r.created_at`

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// recipeRow receives recipe columns. Every field is nullable so the same
// row also serves a LEFT JOIN that found no recipe.
type recipeRow struct {
	id           uuid.NullUUID
	ownerID      uuid.NullUUID
	title        sql.NullString
	description  sql.NullString
	instructions sql.NullString
	prepTime     sql.NullInt32
	cookTime     sql.NullInt32
	servings     sql.NullInt32
	difficulty   sql.NullString
	imageURL     sql.NullString
	sourceURL    sql.NullString
	tags         []byte
	ingredients  []byte
	nutrition    []byte
	createdAt    sql.NullTime
}

func (row *recipeRow) dest() []any {
	return []any{
		&row.id, &row.ownerID, &row.title, &row.description, &row.instructions, &row.prepTime, &row.cookTime,
		&row.servings, &row.difficulty, &row.imageURL, &row.sourceURL, &row.tags, &row.ingredients,
		&row.nutrition, &row.createdAt,
	}
}

// recipe converts the row; it returns nil when no recipe was joined.
func (row *recipeRow) recipe() (*model.Recipe, error) {
	if !row.id.Valid {
		return nil, nil
	}
	recipe := &model.Recipe{
		ID:              row.id.UUID,
		OwnerID:         row.ownerID.UUID,
		Title:           row.title.String,
		Description:     row.description.String,
		Instructions:    row.instructions.String,
		PrepTime:        intPtr(row.prepTime),
		CookTime:        intPtr(row.cookTime),
		Servings:        intPtr(row.servings),
		Difficulty:      row.difficulty.String,
		ImageURL:        row.imageURL.String,
		SourceURL:       row.sourceURL.String,
		Tags:            []string{},
		Ingredients:     []model.Ingredient{},
		NutritionalInfo: map[string]any{},
		CreatedAt:       timeOf(row.createdAt),
	}
	if err := decodeJSON(row.tags, &recipe.Tags); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.ingredients, &recipe.Ingredients); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.nutrition, &recipe.NutritionalInfo); err != nil {
		return nil, err
	}
	return recipe, nil
}

func scanRecipe(scanner rowScanner) (model.Recipe, error) {
	var row recipeRow
	if err := scanner.Scan(row.dest()...); err != nil {
		return model.Recipe{}, err
	}
	recipe, err := row.recipe()
	if err != nil {
		return model.Recipe{}, err
	}
	if recipe == nil {
		return model.Recipe{}, sql.ErrNoRows
	}
	return *recipe, nil
}

type recipeArgs struct {
	tags, ingredients, nutrition string
}

func encodeRecipe(recipe model.Recipe) (recipeArgs, error) {
	var (
		a   recipeArgs
		err error
	)
	if a.tags, err = jsonArg(recipe.Tags, "[]"); err != nil {
		return recipeArgs{}, err
	}
	if a.ingredients, err = jsonArg(recipe.Ingredients, "[]"); err != nil {
		return recipeArgs{}, err
	}
	if a.nutrition, err = jsonArg(recipe.NutritionalInfo, "{}"); err != nil {
		return recipeArgs{}, err
	}
	return a, nil
}

func (r *RecipeRepository) Create(ctx context.Context, recipe model.Recipe) (model.Recipe, error) {
	a, err := encodeRecipe(recipe)
	if err != nil {
		return model.Recipe{}, err
	}

	query := `INSERT INTO recipes AS r (id, user_id, title, description, instructions, prep_time, cook_time,
			  servings, difficulty, image_url, source_url, tags, ingredients, nutritional_info)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			  RETURNING ` + recipeColumns

	saved, err := scanRecipe(r.db.QueryRowContext(ctx, query,
		recipe.ID, recipe.OwnerID, recipe.Title, recipe.Description, recipe.Instructions,
		intArg(recipe.PrepTime), intArg(recipe.CookTime), intArg(recipe.Servings),
		recipe.Difficulty, recipe.ImageURL, recipe.SourceURL, a.tags, a.ingredients, a.nutrition,
	))
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to create recipe: %w", err)
	}
	return saved, nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes r WHERE r.id = $1 AND r.user_id = $2`

	recipe, err := scanRecipe(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Recipe{}, model.ErrNotFound
		}
		return model.Recipe{}, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// Exists reports whether any user owns a recipe with id.
func (r *RecipeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM recipes WHERE id = $1)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check recipe: %w", err)
	}
	return ok, nil
}

// List returns recipes newest first. Search is a case-insensitive title
// substring; every tag in filter.Tags must be present.
func (r *RecipeRepository) List(ctx context.Context, filter model.RecipeFilter) ([]model.Recipe, error) {
	q := newQuery(`SELECT `+recipeColumns+` FROM recipes r WHERE r.user_id = $1`, filter.OwnerID)
	if filter.Search != "" {
		q.write(` AND r.title ILIKE %s`, q.arg(likePattern(filter.Search)))
	}
	if len(filter.Tags) > 0 {
		tags, err := jsonArg(filter.Tags, "[]")
		if err != nil {
			return nil, err
		}
		q.write(` AND r.tags @> %s::jsonb`, q.arg(tags))
	}
	if filter.Difficulty != "" {
		q.write(` AND r.difficulty = %s`, q.arg(filter.Difficulty))
	}
	q.write(` ORDER BY r.created_at DESC, r.id`)
	q.page(filter.Offset, filter.Limit)

	rows, err := r.db.QueryContext(ctx, q.String(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []model.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}
	return recipes, nil
}

func (r *RecipeRepository) Update(ctx context.Context, recipe model.Recipe) (model.Recipe, error) {
	a, err := encodeRecipe(recipe)
	if err != nil {
		return model.Recipe{}, err
	}

	query := `UPDATE recipes AS r SET title = $3, description = $4, instructions = $5, prep_time = $6,
			  cook_time = $7, servings = $8, difficulty = $9, image_url = $10, source_url = $11,
			  tags = $12, ingredients = $13, nutritional_info = $14
			  WHERE r.id = $1 AND r.user_id = $2
			  RETURNING ` + recipeColumns

	saved, err := scanRecipe(r.db.QueryRowContext(ctx, query,
		recipe.ID, recipe.OwnerID, recipe.Title, recipe.Description, recipe.Instructions,
		intArg(recipe.PrepTime), intArg(recipe.CookTime), intArg(recipe.Servings),
		recipe.Difficulty, recipe.ImageURL, recipe.SourceURL, a.tags, a.ingredients, a.nutrition,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Recipe{}, model.ErrNotFound
		}
		return model.Recipe{}, fmt.Errorf("failed to update recipe: %w", err)
	}
	return saved, nil
}

// Delete detaches the recipe from every meal and removes it in one transaction.
func (r *RecipeRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		const detach = `UPDATE meals SET recipe_id = NULL
				  WHERE recipe_id IN (SELECT id FROM recipes WHERE id = $1 AND user_id = $2)`
		if _, err := tx.ExecContext(ctx, detach, id, ownerID); err != nil {
			return fmt.Errorf("failed to detach recipe from meals: %w", err)
		}

		const remove = `DELETE FROM recipes WHERE id = $1 AND user_id = $2`
		res, err := tx.ExecContext(ctx, remove, id, ownerID)
		if err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return requireAffected(res)
	})
}
