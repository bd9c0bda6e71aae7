package recipe

import (
	"context"
	"errors"

	"foodgram/internal/core"
)

var ErrNotFound = errors.New("recipe not found")

type Repository interface {
	Create(ctx context.Context, authorID string, in WriteInput) (int64, error)
	Update(ctx context.Context, id int64, in WriteInput) error
	Delete(ctx context.Context, id int64) error

	// Get fills the viewer-relative flags for viewerID, which may be empty.
	Get(ctx context.Context, id int64, viewerID string) (*Recipe, error)
	List(ctx context.Context, f Filter, viewerID string, limit, offset int) ([]Recipe, int, error)
	AuthorOf(ctx context.Context, id int64) (string, error)
	GetSummary(ctx context.Context, id int64) (*core.RecipeSummary, error)

	// AddFavorite returns false when the recipe is already a favorite.
	AddFavorite(ctx context.Context, userID string, recipeID int64) (bool, error)
	RemoveFavorite(ctx context.Context, userID string, recipeID int64) (bool, error)
}
