package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recipe-service/internal/auth"
	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/repository"
	apperrors "github.com/spec-kit/recipe-service/pkg/util"
)

// uniform message for every authentication failure so callers cannot tell a
// missing account from a wrong password.
const authFailureMessage = "unable to authenticate with provided credentials"

// AuthService coordinates credential verification and opaque token handling.
type AuthService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	cache  auth.TokenCache
}

// NewAuthService builds the service. The cache may be nil, in which case every
// token resolution goes to the repository.
func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, cache auth.TokenCache) *AuthService {
	return &AuthService{users: users, tokens: tokens, cache: cache}
}

// Authenticate verifies an email/password pair against an active account.
// All failure modes collapse into one validation error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError(authFailureMessage, nil)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewValidationError(authFailureMessage, nil)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewValidationError(authFailureMessage, nil)
	}
	return user, nil
}

// IssueToken returns the user's opaque token, creating one on first call.
// Repeated calls return the same value (get-or-create).
func (s *AuthService) IssueToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.tokens.GetOrCreate(ctx, user.ID, uuid.NewString())
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		s.cache.Set(ctx, token, user.ID)
	}
	return token, nil
}

// ResolveToken maps a bearer token to its active user. It returns nil (and no
// error) when the token is empty, unknown, or bound to an inactive account.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}

	userID, cached := int64(0), false
	if s.cache != nil {
		userID, cached = s.cache.Get(ctx, token)
	}
	if !cached {
		var err error
		userID, err = s.tokens.GetUserID(ctx, token)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(ctx, token, userID)
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}
	return user, nil
}
