package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"printshop/internal/services"
)

// AdminTokenHeader carries the session token returned by login.
const AdminTokenHeader = "X-Admin-Token"

// APIKeyMiddleware guards the backend collection when key is non-empty.
func APIKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		if subtle.ConstantTimeCompare([]byte(c.GetHeader("X-API-Key")), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}
		c.Next()
	}
}

// SessionMiddleware admits requests with an active admin session and
// extends it. Rejections say whether a session existed and lapsed.
func SessionMiddleware(sessions services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required", "expired": false})
			return
		}

		ctx := c.Request.Context()
		switch sessions.Status(ctx, token) {
		case services.SessionExpired:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired", "expired": true})
			return
		case services.SessionAbsent:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required", "expired": false})
			return
		}

		if _, err := sessions.Touch(ctx, 0); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to extend session"})
			return
		}
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if token := c.GetHeader(AdminTokenHeader); token != "" {
		return token
	}
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}
