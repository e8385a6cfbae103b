package middleware

import (
	"strings"

	"delivery-management-api/auth"
	"delivery-management-api/models"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userID"
	roleKey   = "role"
)

// AuthRequired validates the bearer token and injects the caller's id and
// role into the context
func AuthRequired(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			AbortWithError(c, errMissingToken)
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(tokenStr))
		if err != nil {
			AbortWithError(c, errBadToken)
			return
		}
		c.Set(userIDKey, claims.ID)
		c.Set(roleKey, string(claims.Role))
		c.Next()
	}
}

// Authorize looks the matched route up in the permission table and rejects
// callers whose role is not listed
func Authorize(perms auth.Permissions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !perms.Allowed(c.Request.Method, c.FullPath(), GetRole(c)) {
			AbortWithError(c, errRoleDenied)
			return
		}
		c.Next()
	}
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetRole extracts caller role from context
func GetRole(c *gin.Context) models.Role {
	return models.Role(c.GetString(roleKey))
}
