package handlers

import (
	"errors"
	"strings"

	"github.com/fourohfour/recipeshare/internal/dto"
	"github.com/fourohfour/recipeshare/internal/middleware"
	"github.com/fourohfour/recipeshare/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RecipeHandler struct {
	recipeService *services.RecipeService
}

func NewRecipeHandler(recipeService *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// List serves both the plain catalog and filtered queries; any filter or
// sort parameter switches it to query mode.
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	q := services.RecipeQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		CookTime: c.QueryInt("cookTime"),
		Servings: c.QueryInt("servings"),
		SortBy:   c.Query("sort"),
	}
	if raw := c.Query("difficulty"); raw != "" {
		q.Difficulties = strings.Split(raw, ",")
	}

	if q.Search == "" && q.Category == "" && len(q.Difficulties) == 0 &&
		q.CookTime == 0 && q.Servings == 0 && q.SortBy == "" {
		list, err := h.recipeService.List(c.Context())
		if err != nil {
			return listError(c, err)
		}
		return c.JSON(dto.RecipeListResponse{Recipes: list, Total: len(list)})
	}

	list, err := h.recipeService.Query(c.Context(), q)
	if err != nil {
		return listError(c, err)
	}
	return c.JSON(dto.RecipeListResponse{Recipes: list, Total: len(list)})
}

func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	recipe, err := h.recipeService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Recipe not found",
			})
		}
		return listError(c, err)
	}
	return c.JSON(recipe)
}

func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	identity, err := middleware.TokenIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	draft := req.ToDraft()
	draft.AuthorID = identity.UserID
	draft.AuthorName = identity.Name

	recipe, err := h.recipeService.Create(c.Context(), draft)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var patch dto.UpdateRecipeRequest
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	recipe, err := h.recipeService.Update(c.Context(), c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Recipe not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(recipe)
}

func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.recipeService.Delete(c.Context(), c.Params("id")); err != nil {
		return listError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Recipe deleted successfully"})
}

// Mine lists the recipes created by the authenticated user.
func (h *RecipeHandler) Mine(c *fiber.Ctx) error {
	identity, err := middleware.TokenIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	list, err := h.recipeService.ByAuthor(c.Context(), identity.UserID)
	if err != nil {
		return listError(c, err)
	}
	return c.JSON(dto.RecipeListResponse{Recipes: list, Total: len(list)})
}

func listError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
