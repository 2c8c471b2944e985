package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"course-manager-client/internal/auth"
)

const (
	userIDContextKey = "userID"
	emailContextKey  = "userEmail"
)

func UserIDFromContext(c *gin.Context) (int64, bool) {
	userID, ok := c.Get(userIDContextKey)
	if !ok {
		return 0, false
	}
	value, ok := userID.(int64)
	return value, ok && value > 0
}

func EmailFromContext(c *gin.Context) string {
	return c.GetString(emailContextKey)
}

// RequireAuth accepts "Bearer <jwt>" and rejects everything else with a bare
// 401, as the course backend's security filter does.
func RequireAuth(cfg auth.TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := auth.VerifyToken(parts[1], cfg)
		if err != nil || claims.UserID <= 0 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(userIDContextKey, claims.UserID)
		c.Set(emailContextKey, claims.Subject)
		c.Next()
	}
}
