package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/foundersof404/404founders/internal/admin"

	"github.com/gin-gonic/gin"
)

// adminKey is the gin context key holding the authenticated admin.Info.
const adminKey = "admin"

// Middleware guards admin endpoints with a bearer token check.
// A missing token is a 401; a malformed, mis-signed or expired token is
// a 400, matching the login surface's uniform error reporting.
func Middleware(tokens *TokenManager, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid token."})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			logger.Warn("token verification failed", "error", err)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid token."})
			return
		}

		c.Set(adminKey, admin.Info{ID: claims.AdminID, Username: claims.Username})
		c.Next()
	}
}

// AdminFromContext returns the identity attached by Middleware.
func AdminFromContext(c *gin.Context) (admin.Info, bool) {
	v, exists := c.Get(adminKey)
	if !exists {
		return admin.Info{}, false
	}
	info, ok := v.(admin.Info)
	return info, ok
}
