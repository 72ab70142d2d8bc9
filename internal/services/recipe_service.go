package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fourohfour/recipeshare/internal/config"
	"github.com/fourohfour/recipeshare/internal/models"
	"github.com/fourohfour/recipeshare/internal/storage"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// Cook-time buckets keep the wire encoding the UI sends (the upper bound of
// each range, with 61 standing in for "over an hour"). The partition over
// total minutes is <30, 30-60 inclusive, >60 — exhaustive, no overlap.
const (
	CookTimeAny     = 0
	CookTimeUnder30 = 30
	CookTime30To60  = 60
	CookTimeOver60  = 61
)

// Servings buckets, same convention: at most 2, 3-4, 5 or more.
const (
	ServingsAny   = 0
	ServingsUpTo2 = 2
	Servings3To4  = 4
	Servings5Plus = 5
	ServingsLimit = 50
)

// Sort orders accepted by Query. Ties keep their original relative order.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortQuickest = "quickest"
	SortServings = "servings"
)

// RecipeQuery combines free-text search with the catalog filters. All five
// predicates are ANDed; zero values leave a predicate unconstrained.
type RecipeQuery struct {
	Search       string
	Category     string // empty or "All" matches everything
	Difficulties []string
	CookTime     int
	Servings     int
	SortBy       string
}

// RecipeService owns the in-memory catalog, newest first. Every mutation is
// mirrored to the blob store under the recipes key; an absent or unreadable
// key seeds the bundled default catalog.
type RecipeService struct {
	store storage.Store
	cfg   *config.Config

	mu      sync.RWMutex
	recipes []models.Recipe
	lastID  int64
}

func NewRecipeService(store storage.Store, cfg *config.Config) *RecipeService {
	s := &RecipeService{store: store, cfg: cfg}
	s.recipes = s.loadCatalog()
	return s
}

// Count is a pure read of the in-memory catalog size; no simulated latency.
func (s *RecipeService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// List returns the full catalog in insertion order.
func (s *RecipeService) List(ctx context.Context) ([]models.Recipe, error) {
	if err := simulate(ctx, delayList, s.cfg.LatencyFactor); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

func (s *RecipeService) GetByID(ctx context.Context, id string) (models.Recipe, error) {
	if err := simulate(ctx, delayGet, s.cfg.LatencyFactor); err != nil {
		return models.Recipe{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recipes {
		if r.ID == id {
			return cloneRecipe(r), nil
		}
	}
	return models.Recipe{}, ErrRecipeNotFound
}

// Create assigns a time-based id and creation timestamp, prepends the
// record and persists the catalog. Author fields come in on the draft and
// are stored as-is; they are never re-resolved against the registry.
func (s *RecipeService) Create(ctx context.Context, draft models.Recipe) (models.Recipe, error) {
	if err := validateRecipe(draft); err != nil {
		return models.Recipe{}, err
	}

	if err := simulate(ctx, delayCreate, s.cfg.LatencyFactor); err != nil {
		return models.Recipe{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft.ID = s.nextIDLocked()
	draft.CreatedAt = time.Now().UTC()
	draft.Tags = dedupeTags(draft.Tags)

	s.recipes = append([]models.Recipe{draft}, s.recipes...)
	s.persistCatalogLocked(ctx)

	return cloneRecipe(draft), nil
}

// Update merges the patch into the record matched by id; absent patch
// fields leave the stored values untouched.
func (s *RecipeService) Update(ctx context.Context, id string, patch models.RecipePatch) (models.Recipe, error) {
	if err := simulate(ctx, delayUpdate, s.cfg.LatencyFactor); err != nil {
		return models.Recipe{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recipes {
		if s.recipes[i].ID != id {
			continue
		}
		merged := cloneRecipe(s.recipes[i])
		patch.Apply(&merged)
		if err := validateRecipe(merged); err != nil {
			return models.Recipe{}, err
		}
		merged.Tags = dedupeTags(merged.Tags)
		s.recipes[i] = merged
		s.persistCatalogLocked(ctx)
		return cloneRecipe(merged), nil
	}
	return models.Recipe{}, ErrRecipeNotFound
}

// Delete removes the record matched by id. Deleting an id that does not
// exist is not an error: the observable end state is identical.
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	if err := simulate(ctx, delayDelete, s.cfg.LatencyFactor); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.recipes[:0]
	removed := false
	for _, r := range s.recipes {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	s.recipes = kept
	if removed {
		s.persistCatalogLocked(ctx)
	}
	return nil
}

// ByAuthor filters the catalog to records created by the given user.
func (s *RecipeService) ByAuthor(ctx context.Context, userID string) ([]models.Recipe, error) {
	if err := simulate(ctx, delayByAuthor, s.cfg.LatencyFactor); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Recipe, 0)
	for _, r := range s.recipes {
		if r.AuthorID == userID {
			out = append(out, cloneRecipe(r))
		}
	}
	return out, nil
}

// Query filters and sorts a snapshot of the catalog; the underlying
// collection is never mutated.
func (s *RecipeService) Query(ctx context.Context, q RecipeQuery) ([]models.Recipe, error) {
	if err := simulate(ctx, delayList, s.cfg.LatencyFactor); err != nil {
		return nil, err
	}

	s.mu.RLock()
	snapshot := s.snapshotLocked()
	s.mu.RUnlock()

	out := make([]models.Recipe, 0, len(snapshot))
	for _, r := range snapshot {
		if q.matches(r) {
			out = append(out, r)
		}
	}

	switch q.SortBy {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case SortQuickest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalTime() < out[j].TotalTime() })
	case SortServings:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Servings > out[j].Servings })
	}
	return out, nil
}

func (q RecipeQuery) matches(r models.Recipe) bool {
	if term := strings.ToLower(q.Search); term != "" {
		hit := strings.Contains(strings.ToLower(r.Title), term) ||
			strings.Contains(strings.ToLower(r.Description), term)
		for _, tag := range r.Tags {
			if hit {
				break
			}
			hit = strings.Contains(strings.ToLower(tag), term)
		}
		if !hit {
			return false
		}
	}

	if q.Category != "" && q.Category != "All" && r.Category != q.Category {
		return false
	}

	if len(q.Difficulties) > 0 {
		found := false
		for _, d := range q.Difficulties {
			if r.Difficulty == d {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	total := r.TotalTime()
	switch q.CookTime {
	case CookTimeAny:
	case CookTimeUnder30:
		if total >= 30 {
			return false
		}
	case CookTime30To60:
		if total < 30 || total > 60 {
			return false
		}
	default:
		if total <= 60 {
			return false
		}
	}

	switch q.Servings {
	case ServingsAny:
	case ServingsUpTo2:
		if r.Servings > 2 {
			return false
		}
	case Servings3To4:
		if r.Servings <= 2 || r.Servings > 4 {
			return false
		}
	default:
		if r.Servings < 5 {
			return false
		}
	}

	return true
}

func validateRecipe(r models.Recipe) error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if !hasNonEmpty(r.Ingredients) {
		return errors.New("at least one ingredient is required")
	}
	if !hasNonEmpty(r.Instructions) {
		return errors.New("at least one instruction is required")
	}
	if r.PrepTime < 0 || r.CookTime < 0 {
		return errors.New("prep and cook time cannot be negative")
	}
	if r.Servings < 1 || r.Servings > ServingsLimit {
		return errors.New("servings must be between 1 and 50")
	}
	return nil
}

func hasNonEmpty(items []string) bool {
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			return true
		}
	}
	return false
}

func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return tags
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// nextIDLocked generates unix-millisecond ids and bumps forward on
// collision so back-to-back creates stay unique.
func (s *RecipeService) nextIDLocked() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *RecipeService) snapshotLocked() []models.Recipe {
	out := make([]models.Recipe, len(s.recipes))
	for i, r := range s.recipes {
		out[i] = cloneRecipe(r)
	}
	return out
}

func cloneRecipe(r models.Recipe) models.Recipe {
	r.Tags = append([]string(nil), r.Tags...)
	r.Ingredients = append([]string(nil), r.Ingredients...)
	r.Instructions = append([]string(nil), r.Instructions...)
	return r
}

func (s *RecipeService) persistCatalogLocked(ctx context.Context) {
	raw, err := json.Marshal(s.recipes)
	if err == nil {
		err = s.store.Put(ctx, storage.KeyRecipes, raw)
	}
	if err != nil {
		slog.Warn("failed to persist catalog", "error", err, "recipes", len(s.recipes))
	}
}

func (s *RecipeService) loadCatalog() []models.Recipe {
	raw, err := s.store.Get(context.Background(), storage.KeyRecipes)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("failed to read catalog, seeding defaults", "error", err)
		}
		return s.seedCatalog()
	}

	var recipes []models.Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		slog.Warn("stored catalog is malformed, seeding defaults", "error", err)
		return s.seedCatalog()
	}
	return recipes
}

func (s *RecipeService) seedCatalog() []models.Recipe {
	recipes := SeedRecipes()
	if raw, err := json.Marshal(recipes); err == nil {
		if err := s.store.Put(context.Background(), storage.KeyRecipes, raw); err != nil {
			slog.Warn("failed to persist seeded catalog", "error", err)
		}
	}
	slog.Info("catalog seeded from bundled dataset", "recipes", len(recipes))
	return recipes
}
