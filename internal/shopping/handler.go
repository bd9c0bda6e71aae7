package shopping

import (
	"errors"
	"fmt"
	"net/http"

	"foodgram/internal/httpx"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/recipes/:id/shopping_cart
// --------------------------------------------------
func (h *Handler) AddToCart(c *gin.Context) {
	recipeID, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	summary, err := h.service.Add(c.Request.Context(), userID, recipeID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// --------------------------------------------------
// DELETE /api/recipes/:id/shopping_cart
// --------------------------------------------------
func (h *Handler) RemoveFromCart(c *gin.Context) {
	recipeID, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, recipeID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// GET /api/recipes/download_shopping_cart
// --------------------------------------------------
func (h *Handler) Download(c *gin.Context) {
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	owner := c.GetString(httpx.KeyUsername)
	if owner == "" {
		owner = c.GetString(httpx.KeyEmail)
	}

	doc, err := h.service.Download(c.Request.Context(), userID, owner)
	if err != nil {
		if errors.Is(err, ErrEmptyList) {
			c.JSON(http.StatusOK, gin.H{"detail": ErrEmptyList.Error()})
			return
		}
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrAlreadyInCart), errors.Is(err, ErrNotInCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrTooManyRecipes):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process shopping list"})
	}
}
