package ingredient

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("ingredient not found")
	ErrDuplicate = errors.New("ingredient with this name and unit already exists")
)

type Repository interface {
	// Search returns every ingredient whose name contains query,
	// case-insensitively. An empty query matches everything.
	Search(ctx context.Context, query string) ([]Ingredient, error)
	FindByID(ctx context.Context, id int64) (*Ingredient, error)
	Create(ctx context.Context, in *Ingredient) error
	Missing(ctx context.Context, ids []int64) ([]int64, error)
}
