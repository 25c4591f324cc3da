package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recipe-service/internal/auth"
	"github.com/spec-kit/recipe-service/internal/config"
	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/events"
	"github.com/spec-kit/recipe-service/internal/repository"
	apperrors "github.com/spec-kit/recipe-service/pkg/util"
)

// UserService manages account creation and profile maintenance.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
	minPassLen int
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
		minPassLen: cfg.PasswordMinLength,
	}
}

// CreateUserInput describes account creation payload.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
}

// UpdateProfileInput carries profile changes; nil fields are left untouched.
type UpdateProfileInput struct {
	Email    *string
	Name     *string
	Password *string
}

// NormalizeEmail lower-cases and trims an email for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a new account. The email is normalized before storage and
// the password is bcrypt-hashed; the plain value is never persisted.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" {
		return nil, apperrors.NewValidationError("email must not be empty", map[string]any{"email": "required"})
	}
	if err := s.validatePassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         input.Name,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the lookup above; the
		// unique constraint reports it the same way.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewValidationError("email already registered", map[string]any{"email": email})
		}
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventUserRegistered,
			UserID:  user.ID,
			Payload: events.UserRegisteredPayload{Email: user.Email},
		})
	}
	return user, nil
}

// CreateSuperuser registers an account with staff and superuser flags set.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.Create(ctx, CreateUserInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns the account by id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the supplied fields to the account. A password, when
// present, is re-validated and re-hashed rather than stored as given.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if email == "" {
			return nil, apperrors.NewValidationError("email must not be empty", map[string]any{"email": "required"})
		}
		if email != user.Email {
			if _, err := s.users.GetByEmail(ctx, email); err == nil {
				return nil, apperrors.NewValidationError("email already registered", map[string]any{"email": email})
			} else if !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
		}
		user.Email = email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Password != nil {
		if err := s.validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewValidationError("email already registered", map[string]any{"email": user.Email})
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) validatePassword(password string) error {
	if len(password) < s.minPassLen {
		return apperrors.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", s.minPassLen),
			map[string]any{"password": fmt.Sprintf("min length %d", s.minPassLen)},
		)
	}
	return nil
}
