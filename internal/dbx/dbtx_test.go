package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS meals (id INTEGER PRIMARY KEY, meal_type TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func countMeals(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM meals`).Scan(&n))
	return n
}

func insertMeal(ctx context.Context, tx DBTX, mealType string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO meals (meal_type) VALUES (?)`, mealType)
	return err
}

func TestWithTx(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		fn        func(ctx context.Context, tx DBTX) error
		wantErr   error
		wantCount int
	}{
		{
			name: "commits on success",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := insertMeal(ctx, tx, "breakfast"); err != nil {
					return err
				}
				return insertMeal(ctx, tx, "lunch")
			},
			wantCount: 2,
		},
		{
			name: "rolls back on error",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := insertMeal(ctx, tx, "dinner"); err != nil {
					return err
				}
				return errBoom
			},
			wantErr:   errBoom,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openDB(t)

			err := WithTx(context.Background(), db, nil, tt.fn)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCount, countMeals(t, db))
		})
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := openDB(t)

	assert.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insertMeal(ctx, tx, "snack"))
			panic("kaput")
		})
	})
	assert.Equal(t, 0, countMeals(t, db))
}

func TestWithTx_BeginError(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.False(t, called)
}
