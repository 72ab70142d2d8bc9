package dto

import "github.com/fourohfour/recipeshare/internal/models"

// CreateRecipeRequest carries the form fields; author identity comes from
// the access token, not the body.
type CreateRecipeRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Category     string   `json:"category"`
	Difficulty   string   `json:"difficulty"`
	PrepTime     int      `json:"prepTime"`
	CookTime     int      `json:"cookTime"`
	Servings     int      `json:"servings"`
	Tags         []string `json:"tags"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

func (r CreateRecipeRequest) ToDraft() models.Recipe {
	return models.Recipe{
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.Image,
		Category:     r.Category,
		Difficulty:   r.Difficulty,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Tags:         r.Tags,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

// UpdateRecipeRequest is a partial update; absent fields are not touched.
type UpdateRecipeRequest = models.RecipePatch

type RecipeListResponse struct {
	Recipes []models.Recipe `json:"recipes"`
	Total   int             `json:"total"`
}
