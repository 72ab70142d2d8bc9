package handlers

import (
	"time"

	"github.com/fourohfour/recipeshare/internal/dto"
	"github.com/fourohfour/recipeshare/internal/services"
	"github.com/fourohfour/recipeshare/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	store         storage.Store
	recipeService *services.RecipeService
}

func NewHealthHandler(store storage.Store, recipeService *services.RecipeService) *HealthHandler {
	return &HealthHandler{store: store, recipeService: recipeService}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	storageStatus := "ok"
	if p, ok := h.store.(interface{ Ping() error }); ok {
		if err := p.Ping(); err != nil {
			storageStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Storage:   storageStatus,
		Recipes:   h.recipeService.Count(),
	})
}
