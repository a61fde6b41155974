package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/stockdash/stockdash/internal/models"
)

const userKey = "current_user"

// IdentityResolver turns the opaque open id carried by the session cookie
// into an account.
type IdentityResolver interface {
	GetByOpenID(ctx context.Context, openID string) (*models.User, error)
}

// Identify resolves the session cookie into the current user and stores it on
// the request context. Requests without a valid session simply stay anonymous;
// rejection is RequireAuth's job.
func Identify(resolver IdentityResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		openID, err := c.Cookie(cookieName)
		if err != nil || openID == "" {
			c.Next()
			return
		}

		user, err := resolver.GetByOpenID(c.Request.Context(), openID)
		if err != nil {
			log.Warnf("auth: failed to resolve session identity: %v", err)
			c.Next()
			return
		}
		if user != nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from the context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// RequireAuth ensures a user is authenticated
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "authentication required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin ensures the authenticated user has the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "authentication required",
			})
			c.Abort()
			return
		}
		if user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "forbidden",
				Message: "admin role required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
