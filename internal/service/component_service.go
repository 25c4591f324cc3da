package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/repository"
	apperrors "github.com/spec-kit/recipe-service/pkg/util"
)

// ComponentService is the ownership-scoped access layer shared by tags and
// ingredients. One instance per variant, differing only in the backing
// repository and the resource name used in errors.
type ComponentService struct {
	repo repository.ComponentRepository
	kind string
}

// NewComponentService builds the service for one component variant.
func NewComponentService(repo repository.ComponentRepository, kind string) *ComponentService {
	return &ComponentService{repo: repo, kind: kind}
}

// List returns the caller's components, ordered by name descending.
func (s *ComponentService) List(ctx context.Context, userID int64) ([]domain.Component, error) {
	components, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if components == nil {
		components = []domain.Component{}
	}
	return components, nil
}

// Create validates the name and persists a component owned by the caller.
// Ownership always comes from the authenticated user, never the payload.
func (s *ComponentService) Create(ctx context.Context, userID int64, name string) (*domain.Component, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("%s name must not be empty", s.kind),
			map[string]any{"name": "required"},
		)
	}

	component := &domain.Component{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, component); err != nil {
		return nil, err
	}
	return component, nil
}

// Get retrieves one of the caller's components. A component owned by someone
// else is reported as not found, never as forbidden.
func (s *ComponentService) Get(ctx context.Context, userID, id int64) (*domain.Component, error) {
	component, err := s.repo.GetForUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(s.kind, map[string]any{"id": id})
		}
		return nil, err
	}
	return component, nil
}
