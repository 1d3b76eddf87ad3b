package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/pkg/response"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/pkg/tokens"
)

// AccessTokenValidator verifies a signed access token and returns its claims.
type AccessTokenValidator interface {
	Validate(token string) (*tokens.AccessClaims, error)
}

// RequireAuth authenticates the request and stores user_id, user_name, and
// roles in the context. The session cookie is checked first; an
// Authorization bearer header is the fallback for non-browser clients.
func RequireAuth(validator AccessTokenValidator, accessCookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""
		if cookie, err := c.Cookie(accessCookieName); err == nil && cookie != "" {
			tokenStr = cookie
		} else if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenStr = strings.TrimPrefix(h, "Bearer ")
		}

		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		claims, err := validator.Validate(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_name", claims.Name)
		c.Set("roles", claims.Roles)
		c.Next()
	}
}
