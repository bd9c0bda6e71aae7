package shopping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodgram/internal/core"
	"foodgram/internal/logger"
	"foodgram/internal/metrics"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrAlreadyInCart  = errors.New("recipe is already in the shopping list")
	ErrNotInCart      = errors.New("recipe is not in the shopping list")
	ErrEmptyList      = errors.New("shopping list is empty")
	ErrTooManyRecipes = errors.New("shopping list has too many recipes")
)

type Service struct {
	repo       Repository
	recipes    core.RecipeReader
	renderer   *Renderer
	maxRecipes int
	log        *logger.Logger
}

func NewService(
	repo Repository,
	recipes core.RecipeReader,
	renderer *Renderer,
	maxRecipes int,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       repo,
		recipes:    recipes,
		renderer:   renderer,
		maxRecipes: maxRecipes,
		log:        log.With("service", "shopping"),
	}
}

// --------------------------------------------------
// Cart membership
// --------------------------------------------------
func (s *Service) Add(
	ctx context.Context,
	userID string,
	recipeID int64,
) (*core.RecipeSummary, error) {

	summary, err := s.recipes.GetSummary(ctx, recipeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	added, err := s.repo.Add(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrAlreadyInCart
	}

	return summary, nil
}

func (s *Service) Remove(
	ctx context.Context,
	userID string,
	recipeID int64,
) error {

	if _, err := s.recipes.GetSummary(ctx, recipeID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	removed, err := s.repo.Remove(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInCart
	}

	return nil
}

// --------------------------------------------------
// Aggregated lines for a user's cart, sorted by name
// --------------------------------------------------
func (s *Service) Lines(
	ctx context.Context,
	userID string,
) ([]AggregatedLine, error) {

	n, err := s.repo.CountRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrEmptyList
	}
	if s.maxRecipes > 0 && n > s.maxRecipes {
		return nil, fmt.Errorf("%w: %d recipes, limit is %d", ErrTooManyRecipes, n, s.maxRecipes)
	}

	recipes, err := s.repo.ListRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	sources := make([]LineSource, 0, len(recipes))
	for _, r := range recipes {
		sources = append(sources, r)
	}

	lines := Aggregate(sources)
	SortLines(lines)

	return lines, nil
}

// Download renders the user's cart. An empty cart is reported as
// ErrEmptyList instead of producing a title-only document.
func (s *Service) Download(
	ctx context.Context,
	userID string,
	ownerName string,
) (*Document, error) {

	lines, err := s.Lines(ctx, userID)
	switch {
	case errors.Is(err, ErrEmptyList):
		metrics.RecordShoppingListOutcome("empty")
		return nil, err
	case errors.Is(err, ErrTooManyRecipes):
		metrics.RecordShoppingListOutcome("too_large")
		s.log.Warn("shopping list rejected", "user_id", userID, "error", err)
		return nil, err
	case err != nil:
		metrics.RecordShoppingListOutcome("error")
		return nil, err
	}

	start := time.Now()
	doc, err := s.renderer.Render(ownerName, lines)
	if err != nil {
		metrics.RecordShoppingListOutcome("error")
		s.log.Error("shopping list render failed", "user_id", userID, "error", err)
		return nil, err
	}
	elapsed := time.Since(start)

	metrics.RecordShoppingListOutcome("rendered")
	metrics.ObserveShoppingListRender(len(lines), elapsed)
	s.log.Info("shopping list rendered",
		"user_id", userID,
		"lines", len(lines),
		"pages", doc.Pages,
		"duration_ms", elapsed.Milliseconds(),
	)

	return doc, nil
}
