package core

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// RecipeSummary is the short recipe card returned by cart, favorite and
// subscription endpoints.
type RecipeSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CookingTime int    `json:"cooking_time"`
}

type RecipeReader interface {
	// GetSummary returns ErrNotFound when the recipe does not exist.
	GetSummary(ctx context.Context, recipeID int64) (*RecipeSummary, error)
}

type UserReader interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}
