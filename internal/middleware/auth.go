package middleware

import (
	"net/http"
	"strings"

	"github.com/Hounds1/Mosk-Server/internal/auth"
	"github.com/gin-gonic/gin"
)

// StoreIDKey is the gin context key the auth middleware stores the
// authenticated store id under.
const StoreIDKey = "storeID"

// AuthMiddleware validates the Bearer token and puts the store id into the
// request context. Every /api/v1 route outside the public group uses it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		storeID, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(StoreIDKey, storeID)
		c.Next()
	}
}
