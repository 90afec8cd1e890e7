package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AksSC/finance/session"
)

// UserIDKey is where RequireLogin stores the authenticated user's ID in
// the gin context.
const UserIDKey = "user_id"

// RequireLogin redirects to the login page unless the request carries a
// valid session cookie.
func RequireLogin(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessions.UserID(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// NoStore stops browsers and proxies from caching rendered pages, which
// would otherwise show stale balances after a trade or a logout.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Expires", "0")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
