package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kyc-backend/internal/shared/auth"
	"kyc-backend/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"

	// CookieName is the session cookie issued at login.
	CookieName = "authToken"
)

// Auth validates the session cookie and stores identity in context.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			respond.Error(c, http.StatusUnauthorized, "Unauthorized: No token provided")
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			ClearSessionCookie(c)
			respond.Error(c, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		c.Set(userIDKey, claims.Sub)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		c.Next()
	}
}

// SetSessionCookie attaches the signed session token as an HTTP-only cookie.
func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}
