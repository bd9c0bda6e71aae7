package shopping

import "context"

// Repository defines the data-access contract for shopping carts.
type Repository interface {
	// Add returns false when the recipe is already in the cart.
	Add(ctx context.Context, userID string, recipeID int64) (bool, error)

	// Remove returns false when the recipe was not in the cart.
	Remove(ctx context.Context, userID string, recipeID int64) (bool, error)

	CountRecipes(ctx context.Context, userID string) (int, error)

	// ListRecipes returns every cart recipe with its ingredient lines.
	ListRecipes(ctx context.Context, userID string) ([]CartRecipe, error)
}
