// Package httpx has small gin helpers shared by the handlers.
package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	KeyUserID   = "userID"
	KeyUsername = "username"
	KeyEmail    = "userEmail"
	KeyRole     = "userRole"
)

// CurrentUserID returns the authenticated user id, or "" for anonymous requests.
func CurrentUserID(c *gin.Context) string {
	v, exists := c.Get(KeyUserID)
	if !exists {
		return ""
	}
	id, _ := v.(string)
	return id
}

// RequireUserID writes 401 and returns false when the request is anonymous.
func RequireUserID(c *gin.Context) (string, bool) {
	id := CurrentUserID(c)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return id, true
}

// ParamID parses a positive integer path parameter and writes 400 otherwise.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// QueryFlag reports whether a boolean filter such as is_favorited=1 is set.
func QueryFlag(c *gin.Context, name string) bool {
	switch c.Query(name) {
	case "1", "true", "True":
		return true
	}
	return false
}
