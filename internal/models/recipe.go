package models

import "time"

// Difficulty levels a recipe can declare.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Categories is the fixed set a recipe may belong to. "All" is not a
// category; it is the query sentinel for "no category filter".
var Categories = []string{
	"Breakfast", "Main Dish", "Pasta", "Dessert",
	"Salad", "Appetizer", "Snack", "Drink",
}

// Recipe is a catalog entry. Author fields are a denormalized copy of the
// creating user taken at creation time and never re-resolved afterwards.
type Recipe struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	Difficulty   string    `json:"difficulty"`
	PrepTime     int       `json:"prepTime"`
	CookTime     int       `json:"cookTime"`
	Servings     int       `json:"servings"`
	Tags         []string  `json:"tags"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TotalTime is prep plus cook time in minutes.
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// RecipePatch is a partial update: nil fields are left untouched by Apply.
type RecipePatch struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Image        *string   `json:"image"`
	Category     *string   `json:"category"`
	Difficulty   *string   `json:"difficulty"`
	PrepTime     *int      `json:"prepTime"`
	CookTime     *int      `json:"cookTime"`
	Servings     *int      `json:"servings"`
	Tags         *[]string `json:"tags"`
	Ingredients  *[]string `json:"ingredients"`
	Instructions *[]string `json:"instructions"`
}

// Apply merges the patch into r, field by field.
func (p RecipePatch) Apply(r *Recipe) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Difficulty != nil {
		r.Difficulty = *p.Difficulty
	}
	if p.PrepTime != nil {
		r.PrepTime = *p.PrepTime
	}
	if p.CookTime != nil {
		r.CookTime = *p.CookTime
	}
	if p.Servings != nil {
		r.Servings = *p.Servings
	}
	if p.Tags != nil {
		r.Tags = *p.Tags
	}
	if p.Ingredients != nil {
		r.Ingredients = *p.Ingredients
	}
	if p.Instructions != nil {
		r.Instructions = *p.Instructions
	}
}
