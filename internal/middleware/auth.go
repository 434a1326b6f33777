package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashurbayy/lifechip/internal/session"
)

// Context keys set by SessionAuth.
const (
	ContextAccountID    = "account_id"
	ContextSessionToken = "session_token"
)

// SessionAuth resolves the session cookie to an account id and stores both
// the id and the raw token in the request context. Requests without a valid,
// unexpired session are rejected with 401.
func SessionAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(session.CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		token, err := sessions.Decode(value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		accountID, err := sessions.Resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set(ContextAccountID, accountID)
		c.Set(ContextSessionToken, token)
		c.Next()
	}
}

// AccountID extracts the authenticated account id set by SessionAuth.
func AccountID(c *gin.Context) (int, bool) {
	value, ok := c.Get(ContextAccountID)
	if !ok {
		return 0, false
	}
	id, ok := value.(int)
	return id, ok
}
