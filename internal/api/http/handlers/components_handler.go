package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recipe-service/internal/api/dto"
	"github.com/spec-kit/recipe-service/internal/auth"
	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/service"
	apperrors "github.com/spec-kit/recipe-service/pkg/util"
)

// ComponentsHandler serves both the tag and ingredient endpoints; the two
// routes differ only in which service instance backs them.
type ComponentsHandler struct {
	service *service.ComponentService
}

// NewComponentsHandler constructs handler.
func NewComponentsHandler(componentService *service.ComponentService) *ComponentsHandler {
	return &ComponentsHandler{service: componentService}
}

// List returns the caller's components, name descending.
func (h *ComponentsHandler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	components, err := h.service.List(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	items := make([]dto.ComponentResponse, 0, len(components))
	for i := range components {
		items = append(items, componentResponse(&components[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create persists a new component owned by the caller.
func (h *ComponentsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateComponentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	component, err := h.service.Create(c.UserContext(), user.ID, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": componentResponse(component)})
}

func componentResponse(component *domain.Component) dto.ComponentResponse {
	return dto.ComponentResponse{
		ID:   component.ID,
		Name: component.Name,
	}
}
