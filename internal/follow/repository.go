package follow

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("subscription not found")

type Repository interface {
	// Follow returns false when the edge already exists.
	Follow(ctx context.Context, userID, targetID string) (bool, error)
	// Unfollow returns false when there was nothing to remove.
	Unfollow(ctx context.Context, userID, targetID string) (bool, error)

	// Subscriptions lists the authors userID follows, most recent first.
	// recipesLimit caps the preview per author; AllRecipes means no cap.
	Subscriptions(ctx context.Context, userID string, limit, offset, recipesLimit int) ([]Subscription, int, error)
	Subscription(ctx context.Context, userID, targetID string, recipesLimit int) (*Subscription, error)
}
