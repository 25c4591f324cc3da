package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/recipe-service/internal/auth"
	"github.com/spec-kit/recipe-service/internal/config"
	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/repository"
	"github.com/spec-kit/recipe-service/internal/service"
	apperrors "github.com/spec-kit/recipe-service/pkg/util"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{BcryptCost: bcrypt.MinCost, PasswordMinLength: 5}
}

// emptyUserRepo behaves like a database with no accounts.
func emptyUserRepo() *mockUserRepo {
	return &mockUserRepo{
		create: func(_ context.Context, user *domain.User) error {
			user.ID = 1
			return nil
		},
		update: func(_ context.Context, _ *domain.User) error { return nil },
		getByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
	}
}

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	if field != "" {
		assert.Contains(t, domainErr.Details, field)
	}
}

func TestUserService_Create_NormalizesEmail(t *testing.T) {
	svc := service.NewUserService(testAuthConfig(), emptyUserRepo(), nil)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "Test@VAZKIR.Com",
		Password: "testpass",
		Name:     "Test",
	})

	require.NoError(t, err)
	assert.Equal(t, "test@vazkir.com", user.Email)
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	svc := service.NewUserService(testAuthConfig(), emptyUserRepo(), nil)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "test@vazkir.com",
		Password: "testpass",
	})

	require.NoError(t, err)
	assert.NotEqual(t, "testpass", user.PasswordHash)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "testpass"))
}

func TestUserService_Create_DefaultsActive(t *testing.T) {
	svc := service.NewUserService(testAuthConfig(), emptyUserRepo(), nil)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "test@vazkir.com",
		Password: "testpass",
	})

	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.False(t, user.IsSuperuser)
}

func TestUserService_Create_EmptyEmail(t *testing.T) {
	svc := service.NewUserService(testAuthConfig(), emptyUserRepo(), nil)

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "   ",
		Password: "testpass",
	})

	assertValidationError(t, err, "email")
}

func TestUserService_Create_ShortPassword(t *testing.T) {
	svc := service.NewUserService(testAuthConfig(), emptyUserRepo(), nil)

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "test@vazkir.com",
		Password: "pw",
	})

	assertValidationError(t, err, "password")
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := emptyUserRepo()
	repo.getByEmail = func(_ context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: 7, Email: email}, nil
	}
	svc := service.NewUserService(testAuthConfig(), repo, nil)

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "test@vazkir.com",
		Password: "testpass",
	})

	assertValidationError(t, err, "email")
}

func TestUserService_Create_DuplicateEmailRace(t *testing.T) {
	// The pre-insert lookup sees no account, but the insert itself loses the
	// race and hits the unique constraint.
	repo := emptyUserRepo()
	repo.create = func(_ context.Context, _ *domain.User) error {
		return repository.ErrDuplicateEmail
	}
	svc := service.NewUserService(testAuthConfig(), repo, nil)

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "test@vazkir.com",
		Password: "testpass",
	})

	assertValidationError(t, err, "email")
}

func TestUserService_UpdateProfile_DuplicateEmailRace(t *testing.T) {
	existing := &domain.User{ID: 1, Email: "test@vazkir.com", IsActive: true}
	repo := &mockUserRepo{
		getByID: func(_ context.Context, _ int64) (*domain.User, error) { return existing, nil },
		getByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
		update: func(_ context.Context, _ *domain.User) error {
			return repository.ErrDuplicateEmail
		},
	}
	svc := service.NewUserService(testAuthConfig(), repo, nil)

	newEmail := "taken@vazkir.com"
	_, err := svc.UpdateProfile(context.Background(), 1, service.UpdateProfileInput{Email: &newEmail})

	assertValidationError(t, err, "email")
}

func TestUserService_CreateSuperuser_SetsFlags(t *testing.T) {
	var persisted *domain.User
	repo := emptyUserRepo()
	repo.update = func(_ context.Context, user *domain.User) error {
		persisted = user
		return nil
	}
	svc := service.NewUserService(testAuthConfig(), repo, nil)

	user, err := svc.CreateSuperuser(context.Background(), "admin@vazkir.com", "password123")

	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	require.NotNil(t, persisted)
	assert.True(t, persisted.IsStaff)
	assert.True(t, persisted.IsSuperuser)
}

func TestUserService_UpdateProfile_RehashesPassword(t *testing.T) {
	existing := &domain.User{ID: 1, Email: "test@vazkir.com", PasswordHash: "old-hash", IsActive: true}
	var persisted *domain.User
	repo := &mockUserRepo{
		getByID: func(_ context.Context, _ int64) (*domain.User, error) { return existing, nil },
		getByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
		update: func(_ context.Context, user *domain.User) error {
			persisted = user
			return nil
		},
	}
	svc := service.NewUserService(testAuthConfig(), repo, nil)

	newPassword := "newpassword"
	_, err := svc.UpdateProfile(context.Background(), 1, service.UpdateProfileInput{Password: &newPassword})

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.NotEqual(t, "newpassword", persisted.PasswordHash)
	assert.NoError(t, auth.ComparePassword(persisted.PasswordHash, "newpassword"))
}

func TestUserService_UpdateProfile_PartialLeavesOtherFields(t *testing.T) {
	existing := &domain.User{ID: 1, Email: "test@vazkir.com", Name: "Old Name", PasswordHash: "hash", IsActive: true}
	repo := &mockUserRepo{
		getByID: func(_ context.Context, _ int64) (*domain.User, error) { return existing, nil },
		update:  func(_ context.Context, _ *domain.User) error { return nil },
	}
	svc := service.NewUserService(testAuthConfig(), repo, nil)

	newName := "New Name"
	user, err := svc.UpdateProfile(context.Background(), 1, service.UpdateProfileInput{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "test@vazkir.com", user.Email)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestUserService_UpdateProfile_NormalizesEmail(t *testing.T) {
	existing := &domain.User{ID: 1, Email: "test@vazkir.com", IsActive: true}
	repo := &mockUserRepo{
		getByID: func(_ context.Context, _ int64) (*domain.User, error) { return existing, nil },
		getByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
		update: func(_ context.Context, _ *domain.User) error { return nil },
	}
	svc := service.NewUserService(testAuthConfig(), repo, nil)

	newEmail := "Updated@VAZKIR.com"
	user, err := svc.UpdateProfile(context.Background(), 1, service.UpdateProfileInput{Email: &newEmail})

	require.NoError(t, err)
	assert.Equal(t, "updated@vazkir.com", user.Email)
}
