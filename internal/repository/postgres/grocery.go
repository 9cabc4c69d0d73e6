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

var _ model.GroceryStore = (*GroceryRepository)(nil)

const groceryColumns = `id, user_id, name, quantity, unit, category, expiration_date, created_at, updated_at`

type GroceryRepository struct {
	db *sql.DB
}

func NewGroceryRepository(db *sql.DB) *GroceryRepository {
	return &GroceryRepository{db: db}
}

func scanGrocery(scanner rowScanner) (model.GroceryItem, error) {
	var (
		item       model.GroceryItem
		expiration sql.NullTime
	)
	err := scanner.Scan(
		&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Unit, &item.Category,
		&expiration, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return model.GroceryItem{}, err
	}
	item.ExpirationDate = datePtr(expiration)
	return item, nil
}

func insertGrocery(ctx context.Context, db dbx.DBTX, item model.GroceryItem) (model.GroceryItem, error) {
	const query = `INSERT INTO grocery_items (id, user_id, name, quantity, unit, category, expiration_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + groceryColumns

	saved, err := scanGrocery(db.QueryRowContext(ctx, query,
		item.ID, item.UserID, item.Name, item.Quantity, item.Unit, item.Category, dateArg(item.ExpirationDate),
	))
	if err != nil {
		return model.GroceryItem{}, fmt.Errorf("failed to create grocery item: %w", err)
	}
	return saved, nil
}

func (r *GroceryRepository) Create(ctx context.Context, item model.GroceryItem) (model.GroceryItem, error) {
	return insertGrocery(ctx, r.db, item)
}

// CreateMany inserts all items or none.
func (r *GroceryRepository) CreateMany(ctx context.Context, items []model.GroceryItem) ([]model.GroceryItem, error) {
	created := make([]model.GroceryItem, 0, len(items))
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, item := range items {
			saved, err := insertGrocery(ctx, tx, item)
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

func (r *GroceryRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (model.GroceryItem, error) {
	const query = `SELECT ` + groceryColumns + ` FROM grocery_items WHERE id = $1 AND user_id = $2`

	item, err := scanGrocery(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.GroceryItem{}, model.ErrNotFound
		}
		return model.GroceryItem{}, fmt.Errorf("failed to get grocery item: %w", err)
	}
	return item, nil
}

// List returns items ordered by expiration date; items without one come last.
func (r *GroceryRepository) List(ctx context.Context, filter model.GroceryFilter) ([]model.GroceryItem, error) {
	q := newQuery(`SELECT `+groceryColumns+` FROM grocery_items WHERE user_id = $1`, filter.UserID)
	if filter.Category != "" {
		q.write(` AND category = %s`, q.arg(filter.Category))
	}
	if filter.ExpiresOnOrFrom != nil {
		q.write(` AND expiration_date >= %s`, q.arg(*filter.ExpiresOnOrFrom))
	}
	if filter.ExpiresOnOrTo != nil {
		q.write(` AND expiration_date <= %s`, q.arg(*filter.ExpiresOnOrTo))
	}
	q.write(` ORDER BY expiration_date NULLS LAST, name`)
	q.page(filter.Offset, filter.Limit)

	rows, err := r.db.QueryContext(ctx, q.String(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list grocery items: %w", err)
	}
	defer rows.Close()

	items := []model.GroceryItem{}
	for rows.Next() {
		item, err := scanGrocery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grocery item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate grocery items: %w", err)
	}
	return items, nil
}

func (r *GroceryRepository) Update(ctx context.Context, item model.GroceryItem) (model.GroceryItem, error) {
	const query = `UPDATE grocery_items SET name = $3, quantity = $4, unit = $5, category = $6,
			  expiration_date = $7, updated_at = NOW()
			  WHERE id = $1 AND user_id = $2
			  RETURNING ` + groceryColumns

	saved, err := scanGrocery(r.db.QueryRowContext(ctx, query,
		item.ID, item.UserID, item.Name, item.Quantity, item.Unit, item.Category, dateArg(item.ExpirationDate),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.GroceryItem{}, model.ErrNotFound
		}
		return model.GroceryItem{}, fmt.Errorf("failed to update grocery item: %w", err)
	}
	return saved, nil
}

func (r *GroceryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const query = `DELETE FROM grocery_items WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete grocery item: %w", err)
	}
	return requireAffected(res)
}
