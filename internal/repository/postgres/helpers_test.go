package postgres

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

var fixedTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

var userColumnNames = []string{
	"id", "email", "username", "full_name", "password_hash", "role", "client_code",
	"dietary_restrictions", "preferences", "family_id", "created_at",
}

func userRows(users ...model.User) *sqlmock.Rows {
	rows := sqlmock.NewRows(userColumnNames)
	for _, u := range users {
		var code, family any
		if u.ClientCode != "" {
			code = u.ClientCode
		}
		if u.FamilyID != nil {
			family = u.FamilyID.String()
		}
		rows.AddRow(u.ID.String(), u.Email, u.Username, u.FullName, u.PasswordHash, string(u.Role), code,
			[]byte(`["vegan"]`), []byte(`{"goal":"bulk"}`), family, fixedTime)
	}
	return rows
}

var recipeColumnNames = []string{
	"id", "user_id", "title", "description", "instructions", "prep_time", "cook_time", "servings",
	"difficulty", "image_url", "source_url", "tags", "ingredients", "nutritional_info", "created_at",
}

func recipeValues(r model.Recipe) []driver.Value {
	return []driver.Value{
		r.ID.String(), r.OwnerID.String(), r.Title, r.Description, r.Instructions, int64(10), nil, int64(2),
		r.Difficulty, r.ImageURL, r.SourceURL, []byte(`["high-protein","quick"]`),
		[]byte(`[{"name":"chicken","quantity":200,"unit":"g"}]`), []byte(`{"protein":45}`), fixedTime,
	}
}

func recipeRows(recipes ...model.Recipe) *sqlmock.Rows {
	rows := sqlmock.NewRows(recipeColumnNames)
	for _, r := range recipes {
		rows.AddRow(recipeValues(r)...)
	}
	return rows
}

func nulls(n int) []driver.Value {
	return make([]driver.Value, n)
}

func ptr[T any](v T) *T {
	return &v
}
