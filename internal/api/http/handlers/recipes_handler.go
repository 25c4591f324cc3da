package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recipe-service/internal/api/dto"
	"github.com/spec-kit/recipe-service/internal/auth"
	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/service"
	apperrors "github.com/spec-kit/recipe-service/pkg/util"
)

// RecipesHandler manages the recipe endpoints.
type RecipesHandler struct {
	service *service.RecipeService
}

// NewRecipesHandler constructs handler.
func NewRecipesHandler(recipeService *service.RecipeService) *RecipesHandler {
	return &RecipesHandler{service: recipeService}
}

// List GET /api/recipes.
func (h *RecipesHandler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	recipes, err := h.service.List(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	items := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		items = append(items, recipeResponse(&recipes[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /api/recipes.
func (h *RecipesHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	recipe, err := h.service.Create(c.UserContext(), user.ID, recipeInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": recipeResponse(recipe)})
}

// Get GET /api/recipes/:id.
func (h *RecipesHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	recipe, err := h.service.Get(c.UserContext(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": recipeResponse(recipe)})
}

// Update PUT /api/recipes/:id with full-replace semantics.
func (h *RecipesHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	var req dto.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	recipe, err := h.service.Update(c.UserContext(), user.ID, id, recipeInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": recipeResponse(recipe)})
}

// Patch PATCH /api/recipes/:id, touching only supplied fields.
func (h *RecipesHandler) Patch(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	var req dto.PatchRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	recipe, err := h.service.Patch(c.UserContext(), user.ID, id, service.RecipePatch{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		IngredientIDs: req.IngredientIDs,
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": recipeResponse(recipe)})
}

// Delete DELETE /api/recipes/:id.
func (h *RecipesHandler) Delete(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := recipeID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), user.ID, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// A non-numeric id can never match a recipe, so it is reported the same way
// as a missing one.
func recipeID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewNotFound("recipe", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func recipeInput(req dto.CreateRecipeRequest) service.RecipeInput {
	return service.RecipeInput{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		IngredientIDs: req.IngredientIDs,
		TagIDs:        req.TagIDs,
	}
}

func recipeResponse(recipe *domain.Recipe) dto.RecipeResponse {
	resp := dto.RecipeResponse{
		ID:            recipe.ID,
		Title:         recipe.Title,
		TimeMinutes:   recipe.TimeMinutes,
		Price:         recipe.Price,
		Link:          recipe.Link,
		IngredientIDs: recipe.IngredientIDs,
		TagIDs:        recipe.TagIDs,
	}
	if resp.IngredientIDs == nil {
		resp.IngredientIDs = []int64{}
	}
	if resp.TagIDs == nil {
		resp.TagIDs = []int64{}
	}
	return resp
}
