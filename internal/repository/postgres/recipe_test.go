package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

func sampleRecipe() model.Recipe {
	return model.Recipe{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Title:        "Chicken bowl",
		Instructions: "Cook it",
		Difficulty:   "easy",
	}
}

func TestRecipeRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	recipe := sampleRecipe()
	recipe.PrepTime = ptr(10)
	recipe.Tags = []string{"high-protein", "quick"}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO recipes AS r`)).
		WithArgs(recipe.ID.String(), recipe.OwnerID.String(), "Chicken bowl", "", "Cook it",
			int64(10), nil, nil, "easy", "", "", `["high-protein","quick"]`, `[]`, `{}`).
		WillReturnRows(recipeRows(recipe))

	saved, err := NewRecipeRepository(db).Create(context.Background(), recipe)

	require.NoError(t, err)
	assert.Equal(t, recipe.ID, saved.ID)
	assert.Equal(t, recipe.OwnerID, saved.OwnerID)
	require.NotNil(t, saved.PrepTime)
	assert.Equal(t, 10, *saved.PrepTime)
	assert.Nil(t, saved.CookTime)
	require.NotNil(t, saved.Servings)
	assert.Equal(t, 2, *saved.Servings)
	assert.Equal(t, []string{"high-protein", "quick"}, saved.Tags)
	assert.Equal(t, []model.Ingredient{{"name": "chicken", "quantity": float64(200), "unit": "g"}}, saved.Ingredients)
	assert.Equal(t, map[string]any{"protein": float64(45)}, saved.NutritionalInfo)
}

func TestRecipeRepository_GetByID(t *testing.T) {
	recipe := sampleRecipe()
	query := regexp.QuoteMeta(`FROM recipes r WHERE r.id = $1 AND r.user_id = $2`)

	t.Run("owned", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).
			WithArgs(recipe.ID.String(), recipe.OwnerID.String()).
			WillReturnRows(recipeRows(recipe))

		got, err := NewRecipeRepository(db).GetByID(context.Background(), recipe.OwnerID, recipe.ID)

		require.NoError(t, err)
		assert.Equal(t, "Chicken bowl", got.Title)
	})

	t.Run("other owner", func(t *testing.T) {
		db, mock := newMockDB(t)
		other := uuid.New()
		mock.ExpectQuery(query).
			WithArgs(recipe.ID.String(), other.String()).
			WillReturnRows(recipeRows())

		_, err := NewRecipeRepository(db).GetByID(context.Background(), other, recipe.ID)

		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestRecipeRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM recipes WHERE id = $1)`)).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewRecipeRepository(db).Exists(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRecipeRepository_List(t *testing.T) {
	owner := uuid.New()
	recipe := sampleRecipe()
	recipe.OwnerID = owner

	tests := []struct {
		name   string
		filter model.RecipeFilter
		query  string
		args   []driver.Value
	}{
		{
			name:   "no filters",
			filter: model.RecipeFilter{OwnerID: owner},
			query:  `WHERE r.user_id = $1 ORDER BY r.created_at DESC, r.id`,
			args:   []driver.Value{owner.String()},
		},
		{
			name: "all filters",
			filter: model.RecipeFilter{
				OwnerID:    owner,
				Search:     "50%_bowl",
				Tags:       []string{"quick"},
				Difficulty: "easy",
				Offset:     20,
				Limit:      10,
			},
			query: `WHERE r.user_id = $1 AND r.title ILIKE $2 AND r.tags @> $3::jsonb AND r.difficulty = $4 ` +
				`ORDER BY r.created_at DESC, r.id OFFSET $5 LIMIT $6`,
			args: []driver.Value{owner.String(), `%50\%\_bowl%`, `["quick"]`, "easy", int64(20), int64(10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery(regexp.QuoteMeta(tt.query) + `$`).WithArgs(tt.args...).WillReturnRows(recipeRows(recipe))

			recipes, err := NewRecipeRepository(db).List(context.Background(), tt.filter)

			require.NoError(t, err)
			require.Len(t, recipes, 1)
			assert.Equal(t, recipe.ID, recipes[0].ID)
		})
	}
}

func TestRecipeRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	recipe := sampleRecipe()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE recipes AS r SET`)).WillReturnRows(recipeRows())

	_, err := NewRecipeRepository(db).Update(context.Background(), recipe)

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRecipeRepository_Delete(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()
	detach := regexp.QuoteMeta(`UPDATE meals SET recipe_id = NULL`)
	remove := regexp.QuoteMeta(`DELETE FROM recipes WHERE id = $1 AND user_id = $2`)

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
		errText string
	}{
		{
			name: "detaches meals and commits",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(detach).WithArgs(id.String(), owner.String()).WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectExec(remove).WithArgs(id.String(), owner.String()).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "missing recipe rolls back",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(detach).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(remove).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "detach failure rolls back",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(detach).WillReturnError(errors.New("lock timeout"))
				mock.ExpectRollback()
			},
			errText: "failed to detach recipe from meals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			err := NewRecipeRepository(db).Delete(context.Background(), owner, id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
