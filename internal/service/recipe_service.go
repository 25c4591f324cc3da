package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/events"
	"github.com/spec-kit/recipe-service/internal/repository"
	apperrors "github.com/spec-kit/recipe-service/pkg/util"
)

// RecipeService coordinates recipe workflows. Every operation is scoped to
// the authenticated owner; referenced ingredient/tag ids must exist but may
// belong to any user.
type RecipeService struct {
	recipes     repository.RecipeRepository
	ingredients repository.ComponentRepository
	tags        repository.ComponentRepository
	dispatcher  events.Dispatcher
}

// RecipeDependencies bundles repositories for recipe service.
type RecipeDependencies struct {
	RecipeRepo     repository.RecipeRepository
	IngredientRepo repository.ComponentRepository
	TagRepo        repository.ComponentRepository
	Dispatcher     events.Dispatcher
}

// NewRecipeService constructs the service.
func NewRecipeService(deps RecipeDependencies) *RecipeService {
	return &RecipeService{
		recipes:     deps.RecipeRepo,
		ingredients: deps.IngredientRepo,
		tags:        deps.TagRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// RecipeInput describes a full recipe payload. TimeMinutes and Price are
// pointers so that an absent field is distinguishable from a zero value.
type RecipeInput struct {
	Title         string
	TimeMinutes   *int
	Price         *float64
	Link          string
	IngredientIDs []int64
	TagIDs        []int64
}

// RecipePatch carries a partial update; nil fields are left untouched.
type RecipePatch struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	IngredientIDs []int64
	TagIDs        []int64
}

// Create validates the payload and persists a recipe owned by the caller.
func (s *RecipeService) Create(ctx context.Context, userID int64, input RecipeInput) (*domain.Recipe, error) {
	recipe, err := s.buildRecipe(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventRecipeCreated, userID, events.RecipeCreatedPayload{RecipeID: recipe.ID, Title: recipe.Title})
	return recipe, nil
}

// List returns the caller's recipes, most recent first.
func (s *RecipeService) List(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	recipes, err := s.recipes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return recipes, nil
}

// Get retrieves one of the caller's recipes. A recipe owned by someone else
// is indistinguishable from a missing one.
func (s *RecipeService) Get(ctx context.Context, userID, id int64) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetForUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("recipe", map[string]any{"id": id})
		}
		return nil, err
	}
	return recipe, nil
}

// Update replaces every field of the caller's recipe with the payload.
func (s *RecipeService) Update(ctx context.Context, userID, id int64, input RecipeInput) (*domain.Recipe, error) {
	recipe, err := s.buildRecipe(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	recipe.ID = id
	if err := s.recipes.Update(ctx, recipe); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("recipe", map[string]any{"id": id})
		}
		return nil, err
	}
	s.publish(ctx, events.EventRecipeUpdated, userID, events.RecipeUpdatedPayload{RecipeID: id, Title: recipe.Title})
	return s.Get(ctx, userID, id)
}

// Patch applies only the supplied fields to the caller's recipe.
func (s *RecipeService) Patch(ctx context.Context, userID, id int64, patch RecipePatch) (*domain.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title must not be empty", map[string]any{"title": "required"})
		}
		recipe.Title = title
	}
	if patch.TimeMinutes != nil {
		if *patch.TimeMinutes < 0 {
			return nil, apperrors.NewValidationError("time_minutes must not be negative", map[string]any{"time_minutes": *patch.TimeMinutes})
		}
		recipe.TimeMinutes = *patch.TimeMinutes
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, apperrors.NewValidationError("price must not be negative", map[string]any{"price": *patch.Price})
		}
		recipe.Price = roundPrice(*patch.Price)
	}
	if patch.Link != nil {
		recipe.Link = *patch.Link
	}
	if patch.IngredientIDs != nil {
		if err := s.checkReferences(ctx, s.ingredients, "ingredients", patch.IngredientIDs); err != nil {
			return nil, err
		}
		recipe.IngredientIDs = patch.IngredientIDs
	}
	if patch.TagIDs != nil {
		if err := s.checkReferences(ctx, s.tags, "tags", patch.TagIDs); err != nil {
			return nil, err
		}
		recipe.TagIDs = patch.TagIDs
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("recipe", map[string]any{"id": id})
		}
		return nil, err
	}
	s.publish(ctx, events.EventRecipeUpdated, userID, events.RecipeUpdatedPayload{RecipeID: id, Title: recipe.Title})
	return s.Get(ctx, userID, id)
}

// Delete removes the caller's recipe; join rows cascade.
func (s *RecipeService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.recipes.DeleteForUser(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("recipe", map[string]any{"id": id})
		}
		return err
	}
	s.publish(ctx, events.EventRecipeDeleted, userID, events.RecipeDeletedPayload{RecipeID: id})
	return nil
}

func (s *RecipeService) buildRecipe(ctx context.Context, userID int64, input RecipeInput) (*domain.Recipe, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title must not be empty", map[string]any{"title": "required"})
	}
	if input.TimeMinutes == nil {
		return nil, apperrors.NewValidationError("time_minutes is required", map[string]any{"time_minutes": "required"})
	}
	if *input.TimeMinutes < 0 {
		return nil, apperrors.NewValidationError("time_minutes must not be negative", map[string]any{"time_minutes": *input.TimeMinutes})
	}
	if input.Price == nil {
		return nil, apperrors.NewValidationError("price is required", map[string]any{"price": "required"})
	}
	if *input.Price < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", map[string]any{"price": *input.Price})
	}

	if err := s.checkReferences(ctx, s.ingredients, "ingredients", input.IngredientIDs); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, s.tags, "tags", input.TagIDs); err != nil {
		return nil, err
	}

	return &domain.Recipe{
		UserID:        userID,
		Title:         title,
		TimeMinutes:   *input.TimeMinutes,
		Price:         roundPrice(*input.Price),
		Link:          input.Link,
		IngredientIDs: input.IngredientIDs,
		TagIDs:        input.TagIDs,
	}, nil
}

func (s *RecipeService) checkReferences(ctx context.Context, repo repository.ComponentRepository, field string, ids []int64) error {
	missing, err := repo.MissingIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError(
			fmt.Sprintf("unknown %s ids", field),
			map[string]any{field: missing},
		)
	}
	return nil
}

func (s *RecipeService) publish(ctx context.Context, eventType events.EventType, userID int64, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    eventType,
		UserID:  userID,
		Payload: payload,
	})
}

// Price is stored with exactly two decimal places.
func roundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
