package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-collab-api/internal/auth"
	"github.com/yukikurage/team-collab-api/internal/constants"
	apierrors "github.com/yukikurage/team-collab-api/internal/errors"
)

// RequireAuth checks the token cookie. A missing cookie is 401, a cookie
// that fails verification is 403.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.TokenCookieName)
		if err != nil || token == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			apierrors.Forbidden(c, "Invalid token")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
