package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/recipe-service/internal/domain"
)

// RecipeRepository encapsulates recipe persistence, including the
// recipe↔ingredient and recipe↔tag join tables. Every read and write is
// filtered by owner in SQL; a recipe belonging to another user behaves
// exactly like a missing one.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe) error
	Update(ctx context.Context, recipe *domain.Recipe) error
	GetForUser(ctx context.Context, userID, id int64) (*domain.Recipe, error)
	// ListByUser returns the user's recipes ordered by id descending.
	ListByUser(ctx context.Context, userID int64) ([]domain.Recipe, error)
	DeleteForUser(ctx context.Context, userID, id int64) error
}

type recipeRepository struct {
	pool *pgxpool.Pool
}

// NewRecipeRepository instantiates repository.
func NewRecipeRepository(pool *pgxpool.Pool) RecipeRepository {
	return &recipeRepository{pool: pool}
}

const recipeSelect = `
    SELECT r.id, r.user_id, r.title, r.time_minutes, r.price, r.link, r.created_at, r.updated_at,
           COALESCE(ARRAY(SELECT ri.ingredient_id FROM recipe_ingredients ri WHERE ri.recipe_id = r.id ORDER BY ri.ingredient_id), '{}'),
           COALESCE(ARRAY(SELECT rt.tag_id FROM recipe_tags rt WHERE rt.recipe_id = r.id ORDER BY rt.tag_id), '{}')
    FROM recipes r`

func (r *recipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO recipes (user_id, title, time_minutes, price, link)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, query,
		recipe.UserID,
		recipe.Title,
		recipe.TimeMinutes,
		recipe.Price,
		recipe.Link,
	).Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt); err != nil {
		return err
	}

	if err := insertRelations(ctx, tx, recipe); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *recipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE recipes SET title=$1, time_minutes=$2, price=$3, link=$4, updated_at=NOW()
        WHERE id=$5 AND user_id=$6`

	cmd, err := tx.Exec(ctx, query,
		recipe.Title,
		recipe.TimeMinutes,
		recipe.Price,
		recipe.Link,
		recipe.ID,
		recipe.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id=$1`, recipe.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id=$1`, recipe.ID); err != nil {
		return err
	}
	if err := insertRelations(ctx, tx, recipe); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertRelations(ctx context.Context, tx pgx.Tx, recipe *domain.Recipe) error {
	for _, ingredientID := range recipe.IngredientIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			recipe.ID, ingredientID,
		); err != nil {
			return err
		}
	}
	for _, tagID := range recipe.TagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			recipe.ID, tagID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *recipeRepository) GetForUser(ctx context.Context, userID, id int64) (*domain.Recipe, error) {
	query := recipeSelect + ` WHERE r.id=$1 AND r.user_id=$2`

	var recipe domain.Recipe
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&recipe.ID,
		&recipe.UserID,
		&recipe.Title,
		&recipe.TimeMinutes,
		&recipe.Price,
		&recipe.Link,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
		&recipe.IngredientIDs,
		&recipe.TagIDs,
	); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	query := recipeSelect + ` WHERE r.user_id=$1 ORDER BY r.id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Recipe
	for rows.Next() {
		var recipe domain.Recipe
		if err := rows.Scan(
			&recipe.ID,
			&recipe.UserID,
			&recipe.Title,
			&recipe.TimeMinutes,
			&recipe.Price,
			&recipe.Link,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
			&recipe.IngredientIDs,
			&recipe.TagIDs,
		); err != nil {
			return nil, err
		}
		result = append(result, recipe)
	}
	return result, rows.Err()
}

func (r *recipeRepository) DeleteForUser(ctx context.Context, userID, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
