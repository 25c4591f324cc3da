package repository_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/repository"
	"github.com/spec-kit/recipe-service/testutil"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	pool := testutil.NewPool(t)
	user := newTestUser(t, pool)
	users := repository.NewUserRepository(pool)

	got, err := users.GetByEmail(context.Background(), user.Email)

	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, got.IsActive)

	_, err = users.GetByEmail(context.Background(), "nobody@vazkir.com")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	pool := testutil.NewPool(t)
	user := newTestUser(t, pool)
	users := repository.NewUserRepository(pool)

	err := users.Create(context.Background(), &domain.User{
		Email:        user.Email,
		PasswordHash: "test-hash",
		IsActive:     true,
	})

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepository_Update_DuplicateEmail(t *testing.T) {
	pool := testutil.NewPool(t)
	first := newTestUser(t, pool)
	second := newTestUser(t, pool)
	users := repository.NewUserRepository(pool)

	second.Email = first.Email
	err := users.Update(context.Background(), second)

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}
