package ingredient

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalid = errors.New("invalid ingredient")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List searches by name. Names starting with the query come first, then the
// remaining names that merely contain it; each group is alphabetical.
func (s *Service) List(ctx context.Context, name string) ([]Ingredient, error) {
	name = strings.TrimSpace(name)

	items, err := s.repo.Search(ctx, name)
	if err != nil {
		return nil, err
	}

	RankByName(items, name)
	return items, nil
}

func RankByName(items []Ingredient, query string) {
	q := strings.ToLower(query)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		pa, pb := strings.HasPrefix(a, q), strings.HasPrefix(b, q)
		if pa != pb {
			return pa
		}
		if a != b {
			return a < b
		}
		return items[i].ID < items[j].ID
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*Ingredient, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string, unit Unit) (*Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if !unit.Valid() {
		return nil, fmt.Errorf("%w: unknown measurement unit %q", ErrInvalid, unit)
	}

	in := &Ingredient{Name: name, MeasurementUnit: unit}
	if err := s.repo.Create(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}
