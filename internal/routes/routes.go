// Package routes defines the API routing configuration.
// It maps every endpoint to its handler and applies authentication and
// elevated-only guards.
package routes

import (
	"marketplace/internal/handlers"
	"marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Accounts *handlers.AccountHandler
	Cards    *handlers.CardHandler
	Health   *handlers.HealthHandler
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers, auth *middleware.AuthMiddleware) {
	app.Get("/health", h.Health.HealthCheck)

	api := app.Group("/api/v1", auth.Handler)
	admin := middleware.AdminAuthMiddleware

	accounts := api.Group("/accounts")
	accounts.Post("/", admin, h.Accounts.CreateAccount)
	accounts.Get("/", admin, h.Accounts.ListAccounts)
	accounts.Get("/search", h.Accounts.SearchAccount)
	accounts.Get("/:id", h.Accounts.GetAccount)
	accounts.Put("/:id", h.Accounts.UpdateAccount)
	accounts.Delete("/:id", admin, h.Accounts.DeleteAccount)

	cards := api.Group("/cards")
	cards.Post("/", h.Cards.CreateCard)
	cards.Get("/", admin, h.Cards.ListCards)
	cards.Get("/search", h.Cards.SearchCard)
	cards.Get("/:id", h.Cards.GetCard)
	cards.Put("/:id", h.Cards.UpdateCard)
	cards.Delete("/:id", h.Cards.DeleteCard)

	api.Get("/admin/cache/stats", admin, h.Health.CacheStats)
}
