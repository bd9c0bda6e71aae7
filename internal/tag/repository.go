package tag

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("tag not found")
	ErrDuplicate = errors.New("tag with this name or slug already exists")
)

type Repository interface {
	List(ctx context.Context) ([]Tag, error)
	FindByID(ctx context.Context, id int64) (*Tag, error)
	Create(ctx context.Context, t *Tag) error
	Missing(ctx context.Context, ids []int64) ([]int64, error)
}
