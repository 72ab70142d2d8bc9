package services

import (
	"strconv"
	"time"

	"github.com/fourohfour/recipeshare/internal/models"
)

// SeedRecipes returns the bundled default catalog, used when the recipes
// key is absent on first load. Every seed record is authored by the demo
// identity so the "my recipes" page has content out of the box.
func SeedRecipes() []models.Recipe {
	out := make([]models.Recipe, len(seedRecipes))
	for i, r := range seedRecipes {
		r.ID = strconv.FormatInt(r.CreatedAt.UnixMilli(), 10)
		r.AuthorID = DemoUser.ID
		r.AuthorName = DemoUser.Name
		out[i] = cloneRecipe(r)
	}
	return out
}

func seedDate(day int, hour int) time.Time {
	return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
}

var seedRecipes = []models.Recipe{
	{
		Title:       "Creamy Garlic Parmesan Pasta",
		Description: "Silky fettuccine tossed in a rich garlic parmesan cream sauce, ready in under half an hour.",
		Image:       "/placeholder.svg?height=300&width=500&text=Creamy+Garlic+Pasta",
		Category:    "Pasta",
		Difficulty:  models.DifficultyEasy,
		PrepTime:    10,
		CookTime:    15,
		Servings:    4,
		Tags:        []string{"pasta", "creamy", "weeknight"},
		Ingredients: []string{
			"400g fettuccine",
			"4 cloves garlic, minced",
			"1 cup heavy cream",
			"1 cup grated parmesan",
			"2 tbsp butter",
			"Salt and black pepper to taste",
		},
		Instructions: []string{
			"Cook the fettuccine in salted boiling water until al dente.",
			"Melt the butter and sauté the garlic until fragrant.",
			"Pour in the cream and simmer for 3 minutes.",
			"Stir in the parmesan until the sauce is smooth.",
			"Toss the drained pasta in the sauce and season.",
		},
		CreatedAt: seedDate(1, 9),
	},
	{
		Title:       "Fluffy Blueberry Pancakes",
		Description: "Weekend-morning pancakes studded with fresh blueberries and finished with maple syrup.",
		Image:       "/placeholder.svg?height=300&width=500&text=Blueberry+Pancakes",
		Category:    "Breakfast",
		Difficulty:  models.DifficultyEasy,
		PrepTime:    10,
		CookTime:    15,
		Servings:    2,
		Tags:        []string{"breakfast", "sweet", "quick"},
		Ingredients: []string{
			"1 1/2 cups flour",
			"2 tbsp sugar",
			"1 tbsp baking powder",
			"1 cup milk",
			"1 egg",
			"1 cup fresh blueberries",
		},
		Instructions: []string{
			"Whisk the dry ingredients together.",
			"Beat in the milk and egg until just combined.",
			"Fold in the blueberries.",
			"Cook ladlefuls on a buttered griddle until bubbles form, then flip.",
			"Serve warm with maple syrup.",
		},
		CreatedAt: seedDate(3, 8),
	},
	{
		Title:       "Slow-Braised Beef Ragu",
		Description: "Fall-apart beef braised for hours in tomato and red wine, perfect over pappardelle or polenta.",
		Image:       "/placeholder.svg?height=300&width=500&text=Beef+Ragu",
		Category:    "Main Dish",
		Difficulty:  models.DifficultyHard,
		PrepTime:    25,
		CookTime:    180,
		Servings:    6,
		Tags:        []string{"beef", "comfort food", "dinner party"},
		Ingredients: []string{
			"1kg beef chuck, cubed",
			"2 onions, diced",
			"3 carrots, diced",
			"800g crushed tomatoes",
			"1 cup red wine",
			"4 sprigs thyme",
		},
		Instructions: []string{
			"Brown the beef in batches in a heavy pot.",
			"Soften the onions and carrots in the same pot.",
			"Deglaze with the wine and reduce by half.",
			"Return the beef with tomatoes and thyme.",
			"Braise covered on low heat for 3 hours, shredding at the end.",
		},
		CreatedAt: seedDate(5, 18),
	},
	{
		Title:       "Molten Chocolate Lava Cakes",
		Description: "Individual dark chocolate cakes with a molten center, baked in under 15 minutes.",
		Image:       "/placeholder.svg?height=300&width=500&text=Lava+Cake",
		Category:    "Dessert",
		Difficulty:  models.DifficultyMedium,
		PrepTime:    15,
		CookTime:    12,
		Servings:    4,
		Tags:        []string{"chocolate", "dessert", "date night"},
		Ingredients: []string{
			"200g dark chocolate",
			"100g butter",
			"2 eggs plus 2 yolks",
			"1/4 cup sugar",
			"2 tbsp flour",
		},
		Instructions: []string{
			"Melt the chocolate and butter together.",
			"Whisk the eggs, yolks and sugar until pale.",
			"Fold the chocolate and flour into the egg mixture.",
			"Divide between buttered ramekins.",
			"Bake at 220°C for 12 minutes; the centers should still wobble.",
		},
		CreatedAt: seedDate(8, 20),
	},
	{
		Title:       "Crunchy Thai Peanut Salad",
		Description: "Shredded cabbage, carrot and herbs in a punchy peanut-lime dressing.",
		Image:       "/placeholder.svg?height=300&width=500&text=Thai+Salad",
		Category:    "Salad",
		Difficulty:  models.DifficultyEasy,
		PrepTime:    20,
		CookTime:    0,
		Servings:    4,
		Tags:        []string{"salad", "fresh", "no cook"},
		Ingredients: []string{
			"1/2 head red cabbage, shredded",
			"2 carrots, julienned",
			"1 red pepper, sliced",
			"1/2 cup roasted peanuts",
			"3 tbsp peanut butter",
			"Juice of 2 limes",
		},
		Instructions: []string{
			"Toss the vegetables together in a large bowl.",
			"Whisk the peanut butter, lime juice and a splash of water into a dressing.",
			"Dress the salad just before serving and top with peanuts.",
		},
		CreatedAt: seedDate(10, 12),
	},
	{
		Title:       "Crispy Baked Mozzarella Sticks",
		Description: "Golden, gooey mozzarella sticks baked instead of fried, with a garlicky marinara dip.",
		Image:       "/placeholder.svg?height=300&width=500&text=Mozzarella+Sticks",
		Category:    "Appetizer",
		Difficulty:  models.DifficultyMedium,
		PrepTime:    20,
		CookTime:    10,
		Servings:    6,
		Tags:        []string{"party", "cheese", "baked"},
		Ingredients: []string{
			"12 mozzarella string cheese sticks",
			"1 cup breadcrumbs",
			"2 eggs, beaten",
			"1/2 cup flour",
			"1 tsp dried oregano",
			"1 cup marinara sauce",
		},
		Instructions: []string{
			"Freeze the cheese sticks for 30 minutes.",
			"Coat each stick in flour, egg, then seasoned breadcrumbs, twice.",
			"Bake at 200°C for 8-10 minutes until golden.",
			"Serve immediately with warm marinara.",
		},
		CreatedAt: seedDate(12, 17),
	},
	{
		Title:       "Spiced Chickpea Snack Mix",
		Description: "Oven-roasted chickpeas with smoked paprika and cumin; a crunchy bowl snack that keeps for days.",
		Image:       "/placeholder.svg?height=300&width=500&text=Chickpea+Mix",
		Category:    "Snack",
		Difficulty:  models.DifficultyEasy,
		PrepTime:    5,
		CookTime:    35,
		Servings:    8,
		Tags:        []string{"vegan", "crunchy", "make ahead"},
		Ingredients: []string{
			"2 cans chickpeas, drained and dried",
			"2 tbsp olive oil",
			"1 tsp smoked paprika",
			"1 tsp ground cumin",
			"Flaky salt",
		},
		Instructions: []string{
			"Toss the chickpeas with oil and spices.",
			"Spread on a baking tray in a single layer.",
			"Roast at 200°C for 30-35 minutes, shaking halfway.",
			"Cool completely before storing.",
		},
		CreatedAt: seedDate(15, 15),
	},
	{
		Title:       "Iced Matcha Latte",
		Description: "A lightly sweetened iced matcha whisked smooth and poured over cold milk.",
		Image:       "/placeholder.svg?height=300&width=500&text=Matcha+Latte",
		Category:    "Drink",
		Difficulty:  models.DifficultyEasy,
		PrepTime:    5,
		CookTime:    0,
		Servings:    1,
		Tags:        []string{"drink", "matcha", "quick"},
		Ingredients: []string{
			"1 tsp matcha powder",
			"2 tbsp hot water",
			"1 cup cold milk",
			"1 tsp honey",
			"Ice",
		},
		Instructions: []string{
			"Whisk the matcha with hot water until frothy and lump-free.",
			"Stir in the honey.",
			"Fill a glass with ice and milk, then pour the matcha over the top.",
		},
		CreatedAt: seedDate(18, 10),
	},
}
