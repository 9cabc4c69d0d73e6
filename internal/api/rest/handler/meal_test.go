package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/mocks"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/service"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/testutil"
)

func newTestMealHandler(t *testing.T) (*Meal, *mocks.MealStore, *mocks.RecipeStore) {
	t.Helper()
	meals := mocks.NewMealStore(t)
	recipes := mocks.NewRecipeStore(t)
	svc := service.NewMeal(meals, recipes, testutil.MakeNoopLogger())
	return NewMeal(svc, contextManager, testutil.MakeNoopLogger()), meals, recipes
}

func TestMeal_List(t *testing.T) {
	h, meals, _ := newTestMealHandler(t)
	user := model.User{ID: uuid.New()}

	meals.On("List", mock.Anything, mock.MatchedBy(func(f model.MealFilter) bool {
		return f.UserID == user.ID &&
			f.From != nil && f.From.String() == "2024-05-06" &&
			f.To != nil && f.To.String() == "2024-05-12" &&
			f.MealType == "lunch" && f.Limit == 100
	})).Return([]model.Meal{{ID: uuid.New(), MealType: "lunch"}}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet,
		"/api/meals/?start_date=2024-05-06&end_date=2024-05-12&meal_type=lunch", "", &user, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]model.Meal](t, rec), 1)
}

func TestMeal_List_InvalidDate(t *testing.T) {
	h, _, _ := newTestMealHandler(t)
	user := model.User{ID: uuid.New()}

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/api/meals/?start_date=06/05/2024", "", &user, nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "start_date must be a date (YYYY-MM-DD)", detail(t, rec))
}

func TestMeal_Week(t *testing.T) {
	h, meals, _ := newTestMealHandler(t)
	user := model.User{ID: uuid.New()}

	meals.On("List", mock.Anything, mock.MatchedBy(func(f model.MealFilter) bool {
		return f.From.String() == "2024-05-06" && f.To.String() == "2024-05-12"
	})).Return([]model.Meal{}, nil)

	rec := httptest.NewRecorder()
	h.Week(rec, newRequest(http.MethodGet, "/api/meals/week?week_start=2024-05-06", "", &user, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMeal_Create(t *testing.T) {
	user := model.User{ID: uuid.New()}
	recipeID := uuid.New()

	tests := []struct {
		name       string
		body       string
		setup      func(meals *mocks.MealStore, recipes *mocks.RecipeStore)
		wantStatus int
		wantDetail string
	}{
		{
			name: "with recipe",
			body: `{"date":"2024-05-06","meal_type":"dinner","recipe_id":"` + recipeID.String() + `"}`,
			setup: func(meals *mocks.MealStore, recipes *mocks.RecipeStore) {
				recipes.On("Exists", mock.Anything, recipeID).Return(true, nil)
				meals.On("Create", mock.Anything, mock.Anything).Return(func(m model.Meal) model.Meal { return m }, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown recipe",
			body: `{"date":"2024-05-06","meal_type":"dinner","recipe_id":"` + recipeID.String() + `"}`,
			setup: func(_ *mocks.MealStore, recipes *mocks.RecipeStore) {
				recipes.On("Exists", mock.Anything, recipeID).Return(false, nil)
			},
			wantStatus: http.StatusNotFound,
			wantDetail: "Recipe not found",
		},
		{
			name:       "missing date",
			body:       `{"meal_type":"dinner"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "date is required",
		},
		{
			name:       "malformed date",
			body:       `{"date":"tomorrow","meal_type":"dinner"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, meals, recipes := newTestMealHandler(t)
			if tt.setup != nil {
				tt.setup(meals, recipes)
			}

			rec := httptest.NewRecorder()
			h.Create(rec, newRequest(http.MethodPost, "/api/meals/", tt.body, &user, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, detail(t, rec))
			}
			if tt.wantStatus == http.StatusOK {
				got := decodeBody[model.Meal](t, rec)
				assert.True(t, got.Planned)
				assert.Equal(t, "2024-05-06", got.Date.String())
			}
		})
	}
}

func TestMeal_UpdateAndDelete(t *testing.T) {
	h, meals, _ := newTestMealHandler(t)
	user := model.User{ID: uuid.New()}
	date, err := model.ParseDate("2024-05-06")
	require.NoError(t, err)
	existing := model.Meal{ID: uuid.New(), UserID: user.ID, Date: date, MealType: "lunch", Planned: true}
	vars := map[string]string{"id": existing.ID.String()}

	meals.On("GetByID", mock.Anything, user.ID, existing.ID).Return(existing, nil)
	meals.On("Update", mock.Anything, mock.Anything).Return(func(m model.Meal) model.Meal { return m }, nil)

	rec := httptest.NewRecorder()
	h.Update(rec, newRequest(http.MethodPut, "/", `{"planned":false,"notes":"ate out"}`, &user, vars))
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[model.Meal](t, rec)
	assert.False(t, got.Planned)
	assert.Equal(t, "ate out", got.Notes)
	assert.Equal(t, "lunch", got.MealType)

	meals.On("Delete", mock.Anything, user.ID, existing.ID).Return(nil)
	rec = httptest.NewRecorder()
	h.Delete(rec, newRequest(http.MethodDelete, "/", "", &user, vars))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Meal deleted successfully", decodeBody[messageResponse](t, rec).Message)

	missing := uuid.New()
	meals.On("Delete", mock.Anything, user.ID, missing).Return(model.ErrNotFound)
	rec = httptest.NewRecorder()
	h.Delete(rec, newRequest(http.MethodDelete, "/", "", &user, map[string]string{"id": missing.String()}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Meal not found", detail(t, rec))
}

func TestMeal_GenerateWeek(t *testing.T) {
	h, meals, _ := newTestMealHandler(t)
	user := model.User{ID: uuid.New()}

	meals.On("CreateMany", mock.Anything, mock.MatchedBy(func(ms []model.Meal) bool {
		return len(ms) == 21 && ms[0].Date.String() == "2024-05-06" && ms[0].Notes == "Auto-generated for vegan"
	})).Return(func(ms []model.Meal) []model.Meal { return ms }, nil)

	rec := httptest.NewRecorder()
	h.GenerateWeek(rec, newRequest(http.MethodPost,
		"/api/meals/generate-week?start_date=2024-05-06&preferences=vegan", "", &user, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[generateWeekResponse](t, rec)
	assert.Equal(t, "Weekly meal plan generated", got.Message)
	assert.Len(t, got.Meals, 21)
}
