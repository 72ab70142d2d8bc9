package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fourohfour/recipeshare/internal/models"
	"github.com/fourohfour/recipeshare/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// fixtureCatalog is a small catalog with distinct timestamps, total times
// and servings so every filter and sort order is distinguishable.
func fixtureCatalog() []models.Recipe {
	base := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	return []models.Recipe{
		{
			ID: "4", Title: "Quick Pasta Bowl", Description: "Weeknight pasta",
			Category: "Pasta", Difficulty: models.DifficultyEasy,
			PrepTime: 5, CookTime: 10, Servings: 2,
			Tags:        []string{"pasta", "quick"},
			Ingredients: []string{"pasta"}, Instructions: []string{"cook"},
			AuthorID: "1", AuthorName: "John Doe",
			CreatedAt: base.Add(72 * time.Hour),
		},
		{
			ID: "3", Title: "Pasta al Forno", Description: "Baked pasta for a crowd",
			Category: "Pasta", Difficulty: models.DifficultyHard,
			PrepTime: 30, CookTime: 45, Servings: 8,
			Tags:        []string{"baked"},
			Ingredients: []string{"pasta"}, Instructions: []string{"bake"},
			AuthorID: "2", AuthorName: "Jane Smith",
			CreatedAt: base.Add(48 * time.Hour),
		},
		{
			ID: "2", Title: "Green Salad", Description: "Crisp and fresh",
			Category: "Salad", Difficulty: models.DifficultyEasy,
			PrepTime: 15, CookTime: 15, Servings: 4,
			Tags:        []string{"fresh", "pasta salad"},
			Ingredients: []string{"lettuce"}, Instructions: []string{"toss"},
			AuthorID: "1", AuthorName: "John Doe",
			CreatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: "1", Title: "Sunday Roast", Description: "Slow roasted",
			Category: "Main Dish", Difficulty: models.DifficultyMedium,
			PrepTime: 20, CookTime: 41, Servings: 6,
			Tags:        []string{"roast"},
			Ingredients: []string{"beef"}, Instructions: []string{"roast"},
			AuthorID: "2", AuthorName: "Jane Smith",
			CreatedAt: base,
		},
	}
}

func newFixtureService(t *testing.T) (*RecipeService, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	raw, err := json.Marshal(fixtureCatalog())
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), storage.KeyRecipes, raw))
	return NewRecipeService(store, testConfig()), store
}

func TestCatalogSeedsWhenStoreIsEmpty(t *testing.T) {
	store := storage.NewMemory()
	s := NewRecipeService(store, testConfig())

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Len(t, list, len(SeedRecipes()))

	// Seeding is mirrored to storage immediately.
	raw, err := store.Get(context.Background(), storage.KeyRecipes)
	require.NoError(t, err)
	var persisted []models.Recipe
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Len(t, persisted, len(list))
}

func TestCatalogSeedsWhenStoredValueIsMalformed(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Put(context.Background(), storage.KeyRecipes, []byte(`[{`)))

	s := NewRecipeService(store, testConfig())
	assert.Equal(t, len(SeedRecipes()), s.Count())
}

func TestCreateAssignsIDAndPrepends(t *testing.T) {
	s, store := newFixtureService(t)
	ctx := context.Background()

	before, err := s.List(ctx)
	require.NoError(t, err)

	created, err := s.Create(ctx, models.Recipe{
		Title:        "Tacos",
		Description:  "Tuesday tacos",
		Category:     "Main Dish",
		Difficulty:   models.DifficultyEasy,
		PrepTime:     10,
		CookTime:     10,
		Servings:     4,
		Ingredients:  []string{"1 cup cheese"},
		Instructions: []string{"Cook"},
		AuthorID:     "1",
		AuthorName:   "John Doe",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	for _, r := range before {
		assert.NotEqual(t, r.ID, created.ID)
	}

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tacos", got.Title)

	// Newest-first insertion order.
	after, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, created.ID, after[0].ID)

	// Mutation mirrored to storage.
	raw, err := store.Get(ctx, storage.KeyRecipes)
	require.NoError(t, err)
	assert.Contains(t, string(raw), created.ID)
}

func TestCreateGeneratesDistinctIDsBackToBack(t *testing.T) {
	s, _ := newFixtureService(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		created, err := s.Create(ctx, models.Recipe{
			Title:        "Batch",
			Servings:     1,
			Ingredients:  []string{"x"},
			Instructions: []string{"y"},
		})
		require.NoError(t, err)
		assert.False(t, seen[created.ID], "duplicate id %s", created.ID)
		seen[created.ID] = true
	}
}

func TestCreateValidatesInvariants(t *testing.T) {
	s, _ := newFixtureService(t)
	ctx := context.Background()

	cases := []models.Recipe{
		{Title: "", Servings: 2, Ingredients: []string{"a"}, Instructions: []string{"b"}},
		{Title: "X", Servings: 2, Ingredients: nil, Instructions: []string{"b"}},
		{Title: "X", Servings: 2, Ingredients: []string{"  "}, Instructions: []string{"b"}},
		{Title: "X", Servings: 2, Ingredients: []string{"a"}, Instructions: nil},
		{Title: "X", Servings: 0, Ingredients: []string{"a"}, Instructions: []string{"b"}},
		{Title: "X", Servings: 51, Ingredients: []string{"a"}, Instructions: []string{"b"}},
		{Title: "X", Servings: 2, PrepTime: -1, Ingredients: []string{"a"}, Instructions: []string{"b"}},
	}
	for _, draft := range cases {
		_, err := s.Create(ctx, draft)
		assert.Error(t, err)
	}
}

func TestCreateDedupesTags(t *testing.T) {
	s, _ := newFixtureService(t)

	created, err := s.Create(context.Background(), models.Recipe{
		Title:        "Tagged",
		Servings:     2,
		Tags:         []string{"vegan", "quick", "vegan", "quick", "dinner"},
		Ingredients:  []string{"a"},
		Instructions: []string{"b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"vegan", "quick", "dinner"}, created.Tags)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	s, _ := newFixtureService(t)
	ctx := context.Background()

	before, err := s.GetByID(ctx, "2")
	require.NoError(t, err)

	updated, err := s.Update(ctx, "2", models.RecipePatch{Servings: intPtr(8)})
	require.NoError(t, err)

	assert.Equal(t, 8, updated.Servings)
	assert.Equal(t, before.Title, updated.Title)
	assert.Equal(t, before.Description, updated.Description)
	assert.Equal(t, before.Category, updated.Category)
	assert.Equal(t, before.Difficulty, updated.Difficulty)
	assert.Equal(t, before.PrepTime, updated.PrepTime)
	assert.Equal(t, before.CookTime, updated.CookTime)
	assert.Equal(t, before.Tags, updated.Tags)
	assert.Equal(t, before.Ingredients, updated.Ingredients)
	assert.Equal(t, before.Instructions, updated.Instructions)
	assert.Equal(t, before.AuthorID, updated.AuthorID)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
}

func TestUpdateNotFoundLeavesCatalogUnchanged(t *testing.T) {
	s, _ := newFixtureService(t)
	ctx := context.Background()

	size := s.Count()
	_, err := s.Update(ctx, "nonexistent", models.RecipePatch{Title: strPtr("Nope")})
	require.ErrorIs(t, err, ErrRecipeNotFound)
	assert.Equal(t, size, s.Count())
}

func TestUpdateRejectsInvalidMerge(t *testing.T) {
	s, _ := newFixtureService(t)

	_, err := s.Update(context.Background(), "2", models.RecipePatch{Servings: intPtr(0)})
	require.Error(t, err)

	// The stored record keeps its previous value.
	got, err := s.GetByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Servings)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s, _ := newFixtureService(t)
	ctx := context.Background()

	size := s.Count()
	require.NoError(t, s.Delete(ctx, "3"))
	assert.Equal(t, size-1, s.Count())

	_, err := s.GetByID(ctx, "3")
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	// Deleting again is not an error and changes nothing.
	require.NoError(t, s.Delete(ctx, "3"))
	assert.Equal(t, size-1, s.Count())
}

func TestByAuthor(t *testing.T) {
	s, _ := newFixtureService(t)

	mine, err := s.ByAuthor(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, "1", r.AuthorID)
	}

	none, err := s.ByAuthor(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListIsIdempotent(t *testing.T) {
	s, _ := newFixtureService(t)
	ctx := context.Background()

	first, err := s.List(ctx)
	require.NoError(t, err)
	second, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQueryUnconstrainedNewestReturnsEverything(t *testing.T) {
	s, _ := newFixtureService(t)

	out, err := s.Query(context.Background(), RecipeQuery{Category: "All", SortBy: SortNewest})
	require.NoError(t, err)
	require.Len(t, out, 4)
	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].CreatedAt.After(out[i-1].CreatedAt),
			"expected descending creation timestamps")
	}
}

func TestQuerySearchMatchesTitleDescriptionAndTags(t *testing.T) {
	s, _ := newFixtureService(t)
	ctx := context.Background()

	// "past" hits "Quick Pasta Bowl" (title), "Pasta al Forno" (title) and
	// "Green Salad" (tag "pasta salad"), case-insensitively.
	out, err := s.Query(ctx, RecipeQuery{Search: "PAST"})
	require.NoError(t, err)
	assert.Len(t, out, 3)

	out, err = s.Query(ctx, RecipeQuery{Search: "slow roasted"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Sunday Roast", out[0].Title)

	out, err = s.Query(ctx, RecipeQuery{Search: "no such recipe"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestQueryCompositeFilters(t *testing.T) {
	s, _ := newFixtureService(t)

	out, err := s.Query(context.Background(), RecipeQuery{
		Search:       "past",
		Category:     "Pasta",
		Difficulties: []string{models.DifficultyEasy},
		CookTime:     CookTimeUnder30,
		SortBy:       SortQuickest,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Quick Pasta Bowl", out[0].Title)
}

func TestQueryCookTimeBuckets(t *testing.T) {
	s, _ := newFixtureService(t)
	ctx := context.Background()

	// Totals: Quick Pasta Bowl 15, Green Salad 30, Sunday Roast 61,
	// Pasta al Forno 75.
	under, err := s.Query(ctx, RecipeQuery{CookTime: CookTimeUnder30})
	require.NoError(t, err)
	require.Len(t, under, 1)
	assert.Equal(t, "Quick Pasta Bowl", under[0].Title)

	mid, err := s.Query(ctx, RecipeQuery{CookTime: CookTime30To60})
	require.NoError(t, err)
	require.Len(t, mid, 1)
	assert.Equal(t, "Green Salad", mid[0].Title)

	over, err := s.Query(ctx, RecipeQuery{CookTime: CookTimeOver60})
	require.NoError(t, err)
	assert.Len(t, over, 2)
}

func TestQueryServingsBuckets(t *testing.T) {
	s, _ := newFixtureService(t)
	ctx := context.Background()

	small, err := s.Query(ctx, RecipeQuery{Servings: ServingsUpTo2})
	require.NoError(t, err)
	require.Len(t, small, 1)
	assert.Equal(t, 2, small[0].Servings)

	mid, err := s.Query(ctx, RecipeQuery{Servings: Servings3To4})
	require.NoError(t, err)
	require.Len(t, mid, 1)
	assert.Equal(t, 4, mid[0].Servings)

	large, err := s.Query(ctx, RecipeQuery{Servings: Servings5Plus})
	require.NoError(t, err)
	assert.Len(t, large, 2)
}

func TestQuerySortOrders(t *testing.T) {
	s, _ := newFixtureService(t)
	ctx := context.Background()

	oldest, err := s.Query(ctx, RecipeQuery{SortBy: SortOldest})
	require.NoError(t, err)
	assert.Equal(t, "Sunday Roast", oldest[0].Title)

	quickest, err := s.Query(ctx, RecipeQuery{SortBy: SortQuickest})
	require.NoError(t, err)
	assert.Equal(t, "Quick Pasta Bowl", quickest[0].Title)

	servings, err := s.Query(ctx, RecipeQuery{SortBy: SortServings})
	require.NoError(t, err)
	assert.Equal(t, 8, servings[0].Servings)
}

func TestQuerySortIsStableForTies(t *testing.T) {
	store := storage.NewMemory()
	base := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	catalog := []models.Recipe{
		{ID: "a", Title: "A", Servings: 2, PrepTime: 5, CookTime: 5,
			Ingredients: []string{"x"}, Instructions: []string{"y"}, CreatedAt: base},
		{ID: "b", Title: "B", Servings: 2, PrepTime: 5, CookTime: 5,
			Ingredients: []string{"x"}, Instructions: []string{"y"}, CreatedAt: base},
		{ID: "c", Title: "C", Servings: 2, PrepTime: 5, CookTime: 5,
			Ingredients: []string{"x"}, Instructions: []string{"y"}, CreatedAt: base},
	}
	raw, err := json.Marshal(catalog)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), storage.KeyRecipes, raw))
	s := NewRecipeService(store, testConfig())

	for _, sortBy := range []string{SortNewest, SortOldest, SortQuickest, SortServings} {
		out, err := s.Query(context.Background(), RecipeQuery{SortBy: sortBy})
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "a", out[0].ID, "sort %q broke tie order", sortBy)
		assert.Equal(t, "b", out[1].ID, "sort %q broke tie order", sortBy)
		assert.Equal(t, "c", out[2].ID, "sort %q broke tie order", sortBy)
	}
}

func TestQueryDoesNotMutateCatalog(t *testing.T) {
	s, _ := newFixtureService(t)
	ctx := context.Background()

	before, err := s.List(ctx)
	require.NoError(t, err)

	_, err = s.Query(ctx, RecipeQuery{SortBy: SortQuickest})
	require.NoError(t, err)

	after, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSimulatedLatencyHonorsContext(t *testing.T) {
	store := storage.NewMemory()
	cfg := testConfig()
	cfg.LatencyFactor = 1.0
	s := NewRecipeService(store, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
