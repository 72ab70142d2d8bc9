package routes

import (
	"time"

	"github.com/fourohfour/recipeshare/internal/config"
	"github.com/fourohfour/recipeshare/internal/handlers"
	"github.com/fourohfour/recipeshare/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	recipeHandler *handlers.RecipeHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Session reads and logout stay outside the strict auth limiter
	api.Get("/auth/me", authHandler.Me)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Catalog — reads are public, writes need a token
	api.Get("/recipes", recipeHandler.List)
	api.Get("/recipes/:id", recipeHandler.Get)
	api.Post("/recipes", middleware.JWTProtected(cfg), recipeHandler.Create)
	api.Put("/recipes/:id", middleware.JWTProtected(cfg), recipeHandler.Update)
	api.Delete("/recipes/:id", middleware.JWTProtected(cfg), recipeHandler.Delete)
	api.Get("/my/recipes", middleware.JWTProtected(cfg), recipeHandler.Mine)
}
