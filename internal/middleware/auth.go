package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/keynertyc/Fullstack-Test-01/internal/auth"
	"github.com/keynertyc/Fullstack-Test-01/internal/constants"
	apierrors "github.com/keynertyc/Fullstack-Test-01/internal/errors"
)

// CurrentUser is the identity resolved from the bearer token. The token is
// the source of truth here; handlers trust the resolved pair.
type CurrentUser struct {
	ID    uint64
	Email string
}

// RequireAuth verifies the bearer token and stores the caller identity in
// the request context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "Authentication token is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Unauthorized(c, "Authorization header format must be Bearer {token}")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, CurrentUser{
			ID:    claims.UserID,
			Email: claims.Email,
		})
		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated identity from context.
func GetCurrentUser(c *gin.Context) (CurrentUser, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return CurrentUser{}, false
	}

	user, ok := value.(CurrentUser)
	if !ok {
		return CurrentUser{}, false
	}
	return user, true
}

// GetUserID retrieves the current user ID from context.
func GetUserID(c *gin.Context) (uint64, bool) {
	user, ok := GetCurrentUser(c)
	if !ok {
		return 0, false
	}
	return user.ID, true
}
