package auth

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

type registerRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150,username"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type setPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
}

// --------------------------------------------------
// POST /api/users
// --------------------------------------------------
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}

	user, err := h.service.Register(c.Request.Context(), RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.Profile())
}

// --------------------------------------------------
// POST /api/auth/token/login
// --------------------------------------------------
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}

	token, _, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}

// --------------------------------------------------
// POST /api/auth/token/logout
// --------------------------------------------------
// Tokens are stateless; the client drops its copy.
func (h *Handler) Logout(c *gin.Context) {
	if _, ok := httpx.RequireUserID(c); !ok {
		return
	}
	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// GET /api/users
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	p := httpx.ParsePage(c)

	users, total, err := h.service.List(c.Request.Context(), httpx.CurrentUserID(c), p.Limit, p.Offset())
	if err != nil {
		writeError(c, err)
		return
	}

	profiles := make([]Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}

	c.JSON(http.StatusOK, httpx.NewPage(c, p, total, profiles))
}

// --------------------------------------------------
// GET /api/users/me
// --------------------------------------------------
func (h *Handler) Me(c *gin.Context) {
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Profile())
}

// --------------------------------------------------
// GET /api/users/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), c.Param("id"), httpx.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Profile())
}

// --------------------------------------------------
// POST /api/users/set_password
// --------------------------------------------------
func (h *Handler) SetPassword(c *gin.Context) {
	userID, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	var req setPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}

	if err := h.service.SetPassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, ErrWrongPassword), errors.Is(err, ErrSamePassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
