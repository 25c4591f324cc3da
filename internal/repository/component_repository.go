package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/recipe-service/internal/domain"
)

// ComponentRepository encapsulates persistence for the user-owned named
// resources (tags and ingredients). Both tables share one shape, so a single
// implementation is parameterized over the table name.
type ComponentRepository interface {
	Create(ctx context.Context, component *domain.Component) error
	// ListByUser returns the user's components ordered by name descending.
	ListByUser(ctx context.Context, userID int64) ([]domain.Component, error)
	GetForUser(ctx context.Context, userID, id int64) (*domain.Component, error)
	// MissingIDs reports which of the given ids do not exist in the table,
	// regardless of owner.
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type componentRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewTagRepository returns the tag-table implementation.
func NewTagRepository(pool *pgxpool.Pool) ComponentRepository {
	return &componentRepository{pool: pool, table: "tags"}
}

// NewIngredientRepository returns the ingredient-table implementation.
func NewIngredientRepository(pool *pgxpool.Pool) ComponentRepository {
	return &componentRepository{pool: pool, table: "ingredients"}
}

func (r *componentRepository) Create(ctx context.Context, component *domain.Component) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (user_id, name)
        VALUES ($1, $2)
        RETURNING id`, r.table)

	return r.pool.QueryRow(ctx, query,
		component.UserID,
		component.Name,
	).Scan(&component.ID)
}

func (r *componentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Component, error) {
	query := fmt.Sprintf(`
        SELECT id, user_id, name
        FROM %s WHERE user_id=$1
        ORDER BY name DESC`, r.table)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Component
	for rows.Next() {
		var component domain.Component
		if err := rows.Scan(&component.ID, &component.UserID, &component.Name); err != nil {
			return nil, err
		}
		result = append(result, component)
	}
	return result, rows.Err()
}

func (r *componentRepository) GetForUser(ctx context.Context, userID, id int64) (*domain.Component, error) {
	query := fmt.Sprintf(`
        SELECT id, user_id, name
        FROM %s WHERE id=$1 AND user_id=$2`, r.table)

	var component domain.Component
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&component.ID,
		&component.UserID,
		&component.Name,
	); err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *componentRepository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
        SELECT wanted.id
        FROM unnest($1::bigint[]) AS wanted(id)
        LEFT JOIN %s t ON t.id = wanted.id
        WHERE t.id IS NULL`, r.table)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missing []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		missing = append(missing, id)
	}
	return missing, rows.Err()
}
