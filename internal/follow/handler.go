package follow

import (
	"errors"
	"net/http"
	"strconv"

	"foodgram/internal/httpx"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// recipesLimit reads ?recipes_limit=; a missing or negative value shows
// every recipe.
func recipesLimit(c *gin.Context) int {
	v, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || v < 0 {
		return AllRecipes
	}
	return v
}

// --------------------------------------------------
// GET /api/users/subscriptions
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}
	p := httpx.ParsePage(c)

	subs, total, err := h.service.Subscriptions(c.Request.Context(), userID, p.Limit, p.Offset(), recipesLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpx.NewPage(c, p, total, subs))
}

// --------------------------------------------------
// POST /api/users/:id/subscribe
// --------------------------------------------------
func (h *Handler) Subscribe(c *gin.Context) {
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), userID, c.Param("id"), recipesLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// --------------------------------------------------
// DELETE /api/users/:id/subscribe
// --------------------------------------------------
func (h *Handler) Unsubscribe(c *gin.Context) {
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrSelfFollow),
		errors.Is(err, ErrAlreadyFollowing),
		errors.Is(err, ErrNotFollowing):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
