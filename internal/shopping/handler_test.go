package shopping

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/httpx"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(h *Handler, userID, username string) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(httpx.KeyUserID, userID)
			c.Set(httpx.KeyUsername, username)
		}
		c.Next()
	})
	router.POST("/api/recipes/:id/shopping_cart", h.AddToCart)
	router.DELETE("/api/recipes/:id/shopping_cart", h.RemoveFromCart)
	router.GET("/api/recipes/download_shopping_cart", h.Download)
	return router
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestHandler_DownloadEmptyCart returns a message instead of a document
func TestHandler_DownloadEmptyCart(t *testing.T) {
	svc, _ := newTestService(t, 0, recipeA)
	router := newTestRouter(NewHandler(svc), "u1", "alice")

	w := serve(router, http.MethodGet, "/api/recipes/download_shopping_cart")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["detail"] != "shopping list is empty" {
		t.Errorf("unexpected detail %q", body["detail"])
	}
	if _, ok := body["message"]; ok {
		t.Errorf("empty list reported under message: %v", body)
	}
}

// TestHandler_DownloadPDF adds recipes and downloads the attachment
func TestHandler_DownloadPDF(t *testing.T) {
	svc, _ := newTestService(t, 0, recipeA, recipeB)
	router := newTestRouter(NewHandler(svc), "u1", "alice")

	for _, path := range []string{"/api/recipes/1/shopping_cart", "/api/recipes/2/shopping_cart"} {
		if w := serve(router, http.MethodPost, path); w.Code != http.StatusCreated {
			t.Fatalf("POST %s: expected status %d, got %d", path, http.StatusCreated, w.Code)
		}
	}

	w := serve(router, http.MethodGet, "/api/recipes/download_shopping_cart")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="shopping_list.pdf"` {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if n := countPages(t, w.Body.Bytes()); n != 1 {
		t.Errorf("expected 1 page, got %d", n)
	}
}

// TestHandler_TooManyRecipes maps the size limit to 422
func TestHandler_TooManyRecipes(t *testing.T) {
	svc, _ := newTestService(t, 1, recipeA, recipeB)
	router := newTestRouter(NewHandler(svc), "u1", "alice")

	serve(router, http.MethodPost, "/api/recipes/1/shopping_cart")
	serve(router, http.MethodPost, "/api/recipes/2/shopping_cart")

	w := serve(router, http.MethodGet, "/api/recipes/download_shopping_cart")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
}

func TestHandler_CartErrors(t *testing.T) {
	svc, _ := newTestService(t, 0, recipeA)
	router := newTestRouter(NewHandler(svc), "u1", "alice")

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"add", http.MethodPost, "/api/recipes/1/shopping_cart", http.StatusCreated},
		{"add twice", http.MethodPost, "/api/recipes/1/shopping_cart", http.StatusBadRequest},
		{"add unknown", http.MethodPost, "/api/recipes/99/shopping_cart", http.StatusNotFound},
		{"bad id", http.MethodPost, "/api/recipes/abc/shopping_cart", http.StatusBadRequest},
		{"remove", http.MethodDelete, "/api/recipes/1/shopping_cart", http.StatusNoContent},
		{"remove twice", http.MethodDelete, "/api/recipes/1/shopping_cart", http.StatusBadRequest},
	}

	for _, tt := range tests {
		w := serve(router, tt.method, tt.path)
		if w.Code != tt.status {
			t.Errorf("%s: expected status %d, got %d", tt.name, tt.status, w.Code)
		}
	}
}

func TestHandler_RequiresUser(t *testing.T) {
	svc, _ := newTestService(t, 0, recipeA)
	router := newTestRouter(NewHandler(svc), "", "")

	w := serve(router, http.MethodGet, "/api/recipes/download_shopping_cart")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
