package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/service"
)

const currentUserKey = "currentUser"

// SessionMiddleware resolves the session cookie to a user record and stashes
// it in the request context. A missing, garbled or expired session simply
// leaves the request anonymous; it never fails the request.
func SessionMiddleware(authService *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			if user := authService.CurrentUser(c.Request.Context(), token); user != nil {
				c.Set(currentUserKey, user)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts unauthenticated requests with 401. It is the sole
// enforcement point for "must be logged in".
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrNotAuthenticated.Error()})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user for this request, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
