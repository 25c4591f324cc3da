package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recipe-service/internal/api/http/handlers"
	"github.com/spec-kit/recipe-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tags           *handlers.ComponentsHandler
	Ingredients    *handlers.ComponentsHandler
	Recipes        *handlers.RecipesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/users", cfg.Users.Create)
	api.Post("/users/token", cfg.Users.CreateToken)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/users/me", cfg.Users.Me)
	protected.Put("/users/me", cfg.Users.UpdateMe)
	protected.Patch("/users/me", cfg.Users.PatchMe)

	protected.Get("/tags", cfg.Tags.List)
	protected.Post("/tags", cfg.Tags.Create)

	protected.Get("/ingredients", cfg.Ingredients.List)
	protected.Post("/ingredients", cfg.Ingredients.Create)

	protected.Get("/recipes", cfg.Recipes.List)
	protected.Post("/recipes", cfg.Recipes.Create)
	protected.Get("/recipes/:id", cfg.Recipes.Get)
	protected.Put("/recipes/:id", cfg.Recipes.Update)
	protected.Patch("/recipes/:id", cfg.Recipes.Patch)
	protected.Delete("/recipes/:id", cfg.Recipes.Delete)
}
