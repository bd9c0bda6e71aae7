package recipe

import (
	"errors"
	"net/http"

	"foodgram/internal/httpx"
	"foodgram/internal/validation"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /api/recipes
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	p := httpx.ParsePage(c)
	f := Filter{
		AuthorID:  c.Query("author"),
		Tags:      c.QueryArray("tags"),
		Favorited: httpx.QueryFlag(c, "is_favorited"),
		InCart:    httpx.QueryFlag(c, "is_in_shopping_cart"),
	}

	recipes, total, err := h.service.List(c.Request.Context(), f, httpx.CurrentUserID(c), p.Limit, p.Offset())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpx.NewPage(c, p, total, recipes))
}

// --------------------------------------------------
// GET /api/recipes/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id, httpx.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// --------------------------------------------------
// POST /api/recipes
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	var in WriteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}

	rec, err := h.service.Create(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// --------------------------------------------------
// PATCH /api/recipes/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	var in WriteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}

	rec, err := h.service.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// --------------------------------------------------
// DELETE /api/recipes/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// POST /api/recipes/:id/favorite
// --------------------------------------------------
func (h *Handler) AddFavorite(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	summary, err := h.service.AddFavorite(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

// --------------------------------------------------
// DELETE /api/recipes/:id/favorite
// --------------------------------------------------
func (h *Handler) RemoveFavorite(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// GET /api/recipes/:id/get-link
// --------------------------------------------------
func (h *Handler) ShortLink(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	link, err := h.service.ShortLink(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"short-link": link})
}

func writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrAlreadyFavorited), errors.Is(err, ErrNotFavorited):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
