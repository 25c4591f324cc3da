package service_test

import (
	"context"

	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/repository"
)

// ---- mock UserRepository ---------------------------------------------------

type mockUserRepo struct {
	create     func(ctx context.Context, user *domain.User) error
	update     func(ctx context.Context, user *domain.User) error
	getByID    func(ctx context.Context, id int64) (*domain.User, error)
	getByEmail func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.create(ctx, user)
}
func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.update(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmail(ctx, email)
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

// ---- mock TokenRepository --------------------------------------------------

type mockTokenRepo struct {
	getOrCreate func(ctx context.Context, userID int64, candidate string) (string, error)
	getUserID   func(ctx context.Context, token string) (int64, error)
}

func (m *mockTokenRepo) GetOrCreate(ctx context.Context, userID int64, candidate string) (string, error) {
	return m.getOrCreate(ctx, userID, candidate)
}
func (m *mockTokenRepo) GetUserID(ctx context.Context, token string) (int64, error) {
	return m.getUserID(ctx, token)
}

var _ repository.TokenRepository = (*mockTokenRepo)(nil)

// ---- mock ComponentRepository ----------------------------------------------

type mockComponentRepo struct {
	create     func(ctx context.Context, component *domain.Component) error
	listByUser func(ctx context.Context, userID int64) ([]domain.Component, error)
	getForUser func(ctx context.Context, userID, id int64) (*domain.Component, error)
	missingIDs func(ctx context.Context, ids []int64) ([]int64, error)
}

func (m *mockComponentRepo) Create(ctx context.Context, component *domain.Component) error {
	return m.create(ctx, component)
}
func (m *mockComponentRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Component, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockComponentRepo) GetForUser(ctx context.Context, userID, id int64) (*domain.Component, error) {
	return m.getForUser(ctx, userID, id)
}
func (m *mockComponentRepo) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if m.missingIDs == nil {
		return nil, nil
	}
	return m.missingIDs(ctx, ids)
}

var _ repository.ComponentRepository = (*mockComponentRepo)(nil)

// ---- mock RecipeRepository -------------------------------------------------

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
