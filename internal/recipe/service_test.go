package recipe

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"foodgram/internal/auth"
	"foodgram/internal/core"
)

type favKey struct {
	userID   string
	recipeID int64
}

type memoryRepo struct {
	mu        sync.Mutex
	next      int64
	recipes   map[int64]*Recipe
	favorites map[favKey]bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		recipes:   map[int64]*Recipe{},
		favorites: map[favKey]bool{},
	}
}

func toRecipe(id int64, authorID string, in WriteInput) *Recipe {
	rec := &Recipe{
		ID:          id,
		Author:      auth.Profile{ID: authorID},
		Name:        in.Name,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}
	for _, ia := range in.Ingredients {
		rec.Ingredients = append(rec.Ingredients, Line{IngredientID: ia.ID, Amount: ia.Amount})
	}
	return rec
}

func (r *memoryRepo) Create(ctx context.Context, authorID string, in WriteInput) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.recipes[r.next] = toRecipe(r.next, authorID, in)
	return r.next, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, in WriteInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.recipes[id]
	if !ok {
		return ErrNotFound
	}
	r.recipes[id] = toRecipe(id, old.Author.ID, in)
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.recipes[id]; !ok {
		return ErrNotFound
	}
	delete(r.recipes, id)
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64, viewerID string) (*Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	cp.IsFavorited = r.favorites[favKey{viewerID, id}]
	return &cp, nil
}

func (r *memoryRepo) List(ctx context.Context, f Filter, viewerID string, limit, offset int) ([]Recipe, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Recipe
	for id, rec := range r.recipes {
		if f.AuthorID != "" && rec.Author.ID != f.AuthorID {
			continue
		}
		if f.Favorited && !r.favorites[favKey{viewerID, id}] {
			continue
		}
		out = append(out, *rec)
	}
	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	total := len(out)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return out[offset:end], total, nil
}

func (r *memoryRepo) AuthorOf(ctx context.Context, id int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recipes[id]
	if !ok {
		return "", ErrNotFound
	}
	return rec.Author.ID, nil
}

func (r *memoryRepo) GetSummary(ctx context.Context, id int64) (*core.RecipeSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recipes[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &core.RecipeSummary{ID: rec.ID, Name: rec.Name, CookingTime: rec.CookingTime}, nil
}

func (r *memoryRepo) AddFavorite(ctx context.Context, userID string, recipeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := favKey{userID, recipeID}
	if r.favorites[k] {
		return false, nil
	}
	r.favorites[k] = true
	return true, nil
}

func (r *memoryRepo) RemoveFavorite(ctx context.Context, userID string, recipeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := favKey{userID, recipeID}
	if !r.favorites[k] {
		return false, nil
	}
	delete(r.favorites, k)
	return true, nil
}

func newTestService() (*Service, *memoryRepo) {
	repo := newMemoryRepo()
	catalog := stubCatalog{1: true, 2: true}
	return NewService(repo, catalog, catalog, "https://foodgram.example", nil), repo
}

func TestService_CreateAndGet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, "author", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == 0 || rec.Author.ID != "author" || len(rec.Ingredients) != 2 {
		t.Errorf("unexpected recipe %+v", rec)
	}

	bad := validInput()
	bad.Ingredients[1].ID = 99
	if _, err := svc.Create(ctx, "author", bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown ingredient, got %v", err)
	}
}

func TestService_OnlyAuthorChanges(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, "author", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validInput()
	in.Name = "Better pancakes"
	if _, err := svc.Update(ctx, "someone-else", rec.ID, in); !errors.Is(err, ErrForbidden) {
		t.Errorf("update: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, "someone-else", rec.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("delete: expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(ctx, "author", rec.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Better pancakes" {
		t.Errorf("name not updated: %q", updated.Name)
	}

	if err := svc.Delete(ctx, "author", rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, rec.ID, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, "author", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestService_Favorites(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rec, _ := svc.Create(ctx, "author", validInput())

	summary, err := svc.AddFavorite(ctx, "u1", rec.ID)
	if err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	if summary.ID != rec.ID || summary.CookingTime != 20 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if _, err := svc.AddFavorite(ctx, "u1", rec.ID); !errors.Is(err, ErrAlreadyFavorited) {
		t.Errorf("expected ErrAlreadyFavorited, got %v", err)
	}

	got, _ := svc.Get(ctx, rec.ID, "u1")
	if !got.IsFavorited {
		t.Error("expected recipe to be favorited for u1")
	}

	if err := svc.RemoveFavorite(ctx, "u1", rec.ID); err != nil {
		t.Fatalf("remove favorite: %v", err)
	}
	if err := svc.RemoveFavorite(ctx, "u1", rec.ID); !errors.Is(err, ErrNotFavorited) {
		t.Errorf("expected ErrNotFavorited, got %v", err)
	}
	if _, err := svc.AddFavorite(ctx, "u1", 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_ListIgnoresViewerFlagsForAnonymous(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, "author", validInput()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	recipes, total, err := svc.List(ctx, Filter{Favorited: true}, "", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(recipes) != 3 {
		t.Errorf("anonymous favorited filter should be ignored, got total=%d", total)
	}

	_, total, _ = svc.List(ctx, Filter{Favorited: true}, "u1", 10, 0)
	if total != 0 {
		t.Errorf("u1 has no favorites, got total=%d", total)
	}
}

func TestService_ShortLink(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rec, _ := svc.Create(ctx, "author", validInput())

	link, err := svc.ShortLink(ctx, rec.ID)
	if err != nil {
		t.Fatalf("short link: %v", err)
	}
	if link != "https://foodgram.example/1/" {
		t.Errorf("unexpected link %q", link)
	}
	if _, err := svc.ShortLink(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
