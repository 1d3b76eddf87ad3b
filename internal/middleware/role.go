package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/pkg/response"
)

// RequireRole ensures the authenticated user carries the named role.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rolesAny, exists := c.Get("roles")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Roles not found in token")
			c.Abort()
			return
		}

		roles, ok := rolesAny.([]string)
		if !ok || !slices.Contains(roles, requiredRole) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires the admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
