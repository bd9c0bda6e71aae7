package middleware

import (
	"net/http"
	"strings"

	"foodgram/internal/auth"
	"foodgram/internal/httpx"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		if !authenticate(c, tokens, authHeader) {
			return
		}
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through but still rejects a bad token.
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		if !authenticate(c, tokens, authHeader) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens *auth.TokenManager, authHeader string) bool {
	parts := strings.Split(authHeader, " ")
	// "Token" is what the frontend sends
	if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
		c.Abort()
		return false
	}

	claims, err := tokens.Validate(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return false
	}

	// Attach user info to request context
	c.Set(httpx.KeyUserID, claims.UserID)
	c.Set(httpx.KeyEmail, claims.Email)
	c.Set(httpx.KeyUsername, claims.Username)
	c.Set(httpx.KeyRole, claims.Role)
	return true
}
