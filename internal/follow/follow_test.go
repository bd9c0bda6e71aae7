package follow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"foodgram/internal/auth"
	"foodgram/internal/core"
	"foodgram/internal/httpx"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type edge struct{ from, to string }

type memoryRepo struct {
	mu      sync.Mutex
	edges   []edge
	recipes map[string][]core.RecipeSummary
}

func (r *memoryRepo) find(from, to string) int {
	for i, e := range r.edges {
		if e.from == from && e.to == to {
			return i
		}
	}
	return -1
}

func (r *memoryRepo) Follow(ctx context.Context, userID, targetID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(userID, targetID) >= 0 {
		return false, nil
	}
	r.edges = append(r.edges, edge{userID, targetID})
	return true, nil
}

func (r *memoryRepo) Unfollow(ctx context.Context, userID, targetID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(userID, targetID)
	if i < 0 {
		return false, nil
	}
	r.edges = append(r.edges[:i], r.edges[i+1:]...)
	return true, nil
}

func (r *memoryRepo) subscription(targetID string, recipesLimit int) Subscription {
	all := r.recipes[targetID]
	preview := all
	if recipesLimit >= 0 && recipesLimit < len(all) {
		preview = all[:recipesLimit]
	}
	return Subscription{
		Profile:      auth.Profile{ID: targetID, Username: targetID, IsSubscribed: true},
		Recipes:      append([]core.RecipeSummary{}, preview...),
		RecipesCount: len(all),
	}
}

func (r *memoryRepo) Subscriptions(ctx context.Context, userID string, limit, offset, recipesLimit int) ([]Subscription, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Subscription
	// newest edge first
	for i := len(r.edges) - 1; i >= 0; i-- {
		if r.edges[i].from == userID {
			out = append(out, r.subscription(r.edges[i].to, recipesLimit))
		}
	}

	total := len(out)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)
	return out[offset:end], total, nil
}

func (r *memoryRepo) Subscription(ctx context.Context, userID, targetID string, recipesLimit int) (*Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(userID, targetID) < 0 {
		return nil, ErrNotFound
	}
	sub := r.subscription(targetID, recipesLimit)
	return &sub, nil
}

type stubUsers map[string]bool

func (s stubUsers) UserExists(ctx context.Context, id string) (bool, error) {
	return s[id], nil
}

func newTestService() *Service {
	repo := &memoryRepo{recipes: map[string][]core.RecipeSummary{
		"chef": {
			{ID: 3, Name: "Soup", CookingTime: 30},
			{ID: 2, Name: "Bread", CookingTime: 90},
			{ID: 1, Name: "Salad", CookingTime: 10},
		},
	}}
	users := stubUsers{"alice": true, "bob": true, "chef": true}
	return NewService(repo, users, nil)
}

func TestSubscribe(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, "alice", "chef", 2)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !sub.IsSubscribed || sub.RecipesCount != 3 || len(sub.Recipes) != 2 {
		t.Errorf("unexpected subscription %+v", sub)
	}

	tests := []struct {
		name   string
		target string
		want   error
	}{
		{"again", "chef", ErrAlreadyFollowing},
		{"self", "alice", ErrSelfFollow},
		{"unknown user", "ghost", ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Subscribe(ctx, "alice", tt.target, AllRecipes); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUnsubscribe(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Unsubscribe(ctx, "alice", "chef"); !errors.Is(err, ErrNotFollowing) {
		t.Errorf("expected ErrNotFollowing, got %v", err)
	}
	if _, err := svc.Subscribe(ctx, "alice", "chef", AllRecipes); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := svc.Unsubscribe(ctx, "alice", "chef"); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if err := svc.Unsubscribe(ctx, "alice", "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSubscriptions_PerUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _ = svc.Subscribe(ctx, "alice", "chef", AllRecipes)
	_, _ = svc.Subscribe(ctx, "alice", "bob", AllRecipes)
	_, _ = svc.Subscribe(ctx, "bob", "chef", AllRecipes)

	subs, total, err := svc.Subscriptions(ctx, "alice", 10, 0, AllRecipes)
	if err != nil {
		t.Fatalf("subscriptions: %v", err)
	}
	if total != 2 || subs[0].ID != "bob" || subs[1].ID != "chef" {
		t.Errorf("unexpected subscriptions %+v", subs)
	}
	if len(subs[1].Recipes) != 3 {
		t.Errorf("expected every recipe without a limit, got %d", len(subs[1].Recipes))
	}

	_, total, _ = svc.Subscriptions(ctx, "chef", 10, 0, AllRecipes)
	if total != 0 {
		t.Errorf("chef follows nobody, got %d", total)
	}
}

// --------------------------------------------------
// Handlers
// --------------------------------------------------

func newTestRouter(svc *Service) *gin.Engine {
	h := NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set(httpx.KeyUserID, id)
		}
		c.Next()
	})
	r.GET("/api/users/subscriptions", h.List)
	r.POST("/api/users/:id/subscribe", h.Subscribe)
	r.DELETE("/api/users/:id/subscribe", h.Unsubscribe)
	return r
}

func do(r *gin.Engine, method, path, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Statuses(t *testing.T) {
	r := newTestRouter(newTestService())

	tests := []struct {
		method string
		path   string
		user   string
		status int
	}{
		{http.MethodPost, "/api/users/chef/subscribe", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/users/chef/subscribe", "alice", http.StatusCreated},
		{http.MethodPost, "/api/users/chef/subscribe", "alice", http.StatusBadRequest},
		{http.MethodPost, "/api/users/alice/subscribe", "alice", http.StatusBadRequest},
		{http.MethodPost, "/api/users/ghost/subscribe", "alice", http.StatusNotFound},
		{http.MethodGet, "/api/users/subscriptions", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/users/subscriptions", "alice", http.StatusOK},
		{http.MethodDelete, "/api/users/chef/subscribe", "alice", http.StatusNoContent},
		{http.MethodDelete, "/api/users/chef/subscribe", "alice", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if w := do(r, tt.method, tt.path, tt.user); w.Code != tt.status {
			t.Errorf("%s %s as %q: expected %d, got %d", tt.method, tt.path, tt.user, tt.status, w.Code)
		}
	}
}

func TestHandler_RecipesLimit(t *testing.T) {
	r := newTestRouter(newTestService())
	do(r, http.MethodPost, "/api/users/chef/subscribe", "alice")

	w := do(r, http.MethodGet, "/api/users/subscriptions?recipes_limit=1", "alice")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var page httpx.Page[Subscription]
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Count != 1 || len(page.Results) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	got := page.Results[0]
	if got.Username != "chef" || got.RecipesCount != 3 || len(got.Recipes) != 1 || got.Recipes[0].Name != "Soup" {
		t.Errorf("unexpected subscription %+v", got)
	}
}
