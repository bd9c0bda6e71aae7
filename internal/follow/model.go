package follow

import (
	"foodgram/internal/auth"
	"foodgram/internal/core"
)

// Subscription is a followed author with a preview of their recipes.
type Subscription struct {
	auth.Profile
	Recipes      []core.RecipeSummary `json:"recipes"`
	RecipesCount int                  `json:"recipes_count"`
}

// AllRecipes disables the recipe preview limit.
const AllRecipes = -1
