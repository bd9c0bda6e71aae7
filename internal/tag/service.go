package tag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram/internal/validation"
)

var ErrInvalid = errors.New("invalid tag")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Tag, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Tag, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, name, slug string) (*Tag, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if !validation.ValidSlug(slug) {
		return nil, fmt.Errorf("%w: bad slug %q", ErrInvalid, slug)
	}

	t := &Tag{Name: name, Slug: slug}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
