package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/recipe-service/internal/api/http"
	"github.com/spec-kit/recipe-service/internal/api/http/handlers"
	"github.com/spec-kit/recipe-service/internal/auth"
	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/observability"
	"github.com/spec-kit/recipe-service/internal/repository"
	"github.com/spec-kit/recipe-service/internal/service"
)

// ---- mocks -----------------------------------------------------------------

type mockRecipeRepo struct {
	create        func(ctx context.Context, recipe *domain.Recipe) error
	update        func(ctx context.Context, recipe *domain.Recipe) error
	getForUser    func(ctx context.Context, userID, id int64) (*domain.Recipe, error)
	listByUser    func(ctx context.Context, userID int64) ([]domain.Recipe, error)
	deleteForUser func(ctx context.Context, userID, id int64) error
}

func (m *mockRecipeRepo) Create(ctx context.Context, recipe *domain.Recipe) error {
	return m.create(ctx, recipe)
}
func (m *mockRecipeRepo) Update(ctx context.Context, recipe *domain.Recipe) error {
	return m.update(ctx, recipe)
}
func (m *mockRecipeRepo) GetForUser(ctx context.Context, userID, id int64) (*domain.Recipe, error) {
	return m.getForUser(ctx, userID, id)
}
func (m *mockRecipeRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockRecipeRepo) DeleteForUser(ctx context.Context, userID, id int64) error {
	return m.deleteForUser(ctx, userID, id)
}

var _ repository.RecipeRepository = (*mockRecipeRepo)(nil)

func newRecipeApp(recipes repository.RecipeRepository, user *domain.User) *fiber.App {
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	noMissing := &mockComponentRepo{
		missingIDs: func(_ context.Context, _ []int64) ([]int64, error) { return nil, nil },
	}
	handler := handlers.NewRecipesHandler(service.NewRecipeService(service.RecipeDependencies{
		RecipeRepo:     recipes,
		IngredientRepo: noMissing,
		TagRepo:        noMissing,
	}))
	middleware := auth.NewMiddleware(&stubResolver{user: user})

	protected := app.Group("/api", middleware.Handle)
	protected.Get("/recipes", handler.List)
	protected.Post("/recipes", handler.Create)
	protected.Get("/recipes/:id", handler.Get)
	protected.Put("/recipes/:id", handler.Update)
	protected.Patch("/recipes/:id", handler.Patch)
	protected.Delete("/recipes/:id", handler.Delete)
	return app
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

// ---- tests -----------------------------------------------------------------

func TestCreateRecipe_Created(t *testing.T) {
	var persisted *domain.Recipe
	recipes := &mockRecipeRepo{
		create: func(_ context.Context, recipe *domain.Recipe) error {
			recipe.ID = 7
			persisted = recipe
			return nil
		},
	}
	app := newRecipeApp(recipes, testUser())

	resp, err := app.Test(authedRequest(http.MethodPost, "/api/recipes",
		`{"title":"Pad thai","time_minutes":25,"price":"ignored"}`))

	// price typed wrong on purpose: BodyParser rejects the payload
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, persisted)

	resp, err = app.Test(authedRequest(http.MethodPost, "/api/recipes",
		`{"title":"Pad thai","time_minutes":25,"price":9.5,"ingredients":[1,2],"tags":[3]}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, persisted)
	assert.Equal(t, int64(42), persisted.UserID)
	assert.Equal(t, []int64{1, 2}, persisted.IngredientIDs)
	assert.Equal(t, []int64{3}, persisted.TagIDs)
}

func TestGetRecipe_NonNumericIDIsNotFound(t *testing.T) {
	app := newRecipeApp(&mockRecipeRepo{}, testUser())

	resp, err := app.Test(authedRequest(http.MethodGet, "/api/recipes/abc", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetRecipe_OtherOwnerIsNotFound(t *testing.T) {
	recipes := &mockRecipeRepo{
		getForUser: func(_ context.Context, _, _ int64) (*domain.Recipe, error) {
			return nil, pgx.ErrNoRows
		},
	}
	app := newRecipeApp(recipes, testUser())

	resp, err := app.Test(authedRequest(http.MethodGet, "/api/recipes/7", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetRecipe_EmptyRelationsSerializeAsArrays(t *testing.T) {
	recipes := &mockRecipeRepo{
		getForUser: func(_ context.Context, userID, id int64) (*domain.Recipe, error) {
			return &domain.Recipe{ID: id, UserID: userID, Title: "Pad thai", TimeMinutes: 25, Price: 9.5}, nil
		},
	}
	app := newRecipeApp(recipes, testUser())

	resp, err := app.Test(authedRequest(http.MethodGet, "/api/recipes/7", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{}, data["ingredients"])
	assert.Equal(t, []any{}, data["tags"])
}

func TestPatchRecipe_OnlySuppliedFieldsChange(t *testing.T) {
	var persisted *domain.Recipe
	recipes := &mockRecipeRepo{
		getForUser: func(_ context.Context, userID, id int64) (*domain.Recipe, error) {
			return &domain.Recipe{
				ID: id, UserID: userID, Title: "Pad thai", TimeMinutes: 25, Price: 9.5,
				IngredientIDs: []int64{1}, TagIDs: []int64{3},
			}, nil
		},
		update: func(_ context.Context, recipe *domain.Recipe) error {
			persisted = recipe
			return nil
		},
	}
	app := newRecipeApp(recipes, testUser())

	resp, err := app.Test(authedRequest(http.MethodPatch, "/api/recipes/7", `{"price":12.0}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, persisted)
	assert.Equal(t, "Pad thai", persisted.Title)
	assert.InDelta(t, 12.0, persisted.Price, 0.0001)
	assert.Equal(t, []int64{1}, persisted.IngredientIDs)
}

func TestDeleteRecipe_NoContent(t *testing.T) {
	var capturedUserID, capturedID int64
	recipes := &mockRecipeRepo{
		deleteForUser: func(_ context.Context, userID, id int64) error {
			capturedUserID, capturedID = userID, id
			return nil
		},
	}
	app := newRecipeApp(recipes, testUser())

	resp, err := app.Test(authedRequest(http.MethodDelete, "/api/recipes/7", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, int64(42), capturedUserID)
	assert.Equal(t, int64(7), capturedID)
}
