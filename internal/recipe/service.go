package recipe

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/core"
	"foodgram/internal/logger"
)

var (
	ErrForbidden        = errors.New("only the author can change this recipe")
	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
)

type Service struct {
	repo        Repository
	ingredients core.CatalogReader
	tags        core.CatalogReader
	baseURL     string
	log         *logger.Logger
}

func NewService(
	repo Repository,
	ingredients core.CatalogReader,
	tags core.CatalogReader,
	baseURL string,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:        repo,
		ingredients: ingredients,
		tags:        tags,
		baseURL:     baseURL,
		log:         log.With("service", "recipe"),
	}
}

func (s *Service) validate(ctx context.Context, in WriteInput) error {
	if err := Validate(in); err != nil {
		return err
	}
	return ValidateReferences(ctx, in, s.ingredients, s.tags)
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, authorID string, in WriteInput) (*Recipe, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, authorID, in)
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	s.log.Info("recipe created", "recipe_id", id, "author_id", authorID)

	return s.repo.Get(ctx, id, authorID)
}

func (s *Service) Update(ctx context.Context, userID string, id int64, in WriteInput) (*Recipe, error) {
	if err := s.checkAuthor(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, in); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id, userID)
}

func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.checkAuthor(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("recipe deleted", "recipe_id", id, "author_id", userID)
	return nil
}

func (s *Service) checkAuthor(ctx context.Context, userID string, id int64) error {
	authorID, err := s.repo.AuthorOf(ctx, id)
	if err != nil {
		return err
	}
	if authorID != userID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64, viewerID string) (*Recipe, error) {
	return s.repo.Get(ctx, id, viewerID)
}

func (s *Service) List(
	ctx context.Context,
	f Filter,
	viewerID string,
	limit, offset int,
) ([]Recipe, int, error) {

	if viewerID == "" {
		f.Favorited = false
		f.InCart = false
	}
	return s.repo.List(ctx, f, viewerID, limit, offset)
}

// --------------------------------------------------
// Favorites
// --------------------------------------------------
func (s *Service) AddFavorite(ctx context.Context, userID string, recipeID int64) (*core.RecipeSummary, error) {
	summary, err := s.summary(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	added, err := s.repo.AddFavorite(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrAlreadyFavorited
	}
	return summary, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, userID string, recipeID int64) error {
	if _, err := s.summary(ctx, recipeID); err != nil {
		return err
	}

	removed, err := s.repo.RemoveFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFavorited
	}
	return nil
}

func (s *Service) summary(ctx context.Context, recipeID int64) (*core.RecipeSummary, error) {
	summary, err := s.repo.GetSummary(ctx, recipeID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, ErrNotFound
	}
	return summary, err
}

// ShortLink is the public link to a recipe page.
func (s *Service) ShortLink(ctx context.Context, recipeID int64) (string, error) {
	if _, err := s.summary(ctx, recipeID); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%d/", s.baseURL, recipeID), nil
}
