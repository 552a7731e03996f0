package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contable-ledger/internal/webapp/service"
)

const (
	// SessionKey is the key used to store the resolved session in the context
	SessionKey = "session"

	bearerPrefix = "Bearer "
)

// RequireSession resolves the bearer token against the session table
// and aborts with 401 when it is missing, unknown or expired.
func RequireSession(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		token := strings.TrimPrefix(header, bearerPrefix)
		session, ok := sessions.Get(token)
		if !ok {
			abortUnauthorized(c, "Session expired or unknown, log in again")
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// GetSession retrieves the session placed in the context by RequireSession.
func GetSession(c *gin.Context) *Session {
	if v, exists := c.Get(SessionKey); exists {
		if session, ok := v.(*service.Session); ok {
			return session
		}
	}
	return nil
}

// Session aliases the service session so handlers can reach it through
// this package alone.
type Session = service.Session

func abortUnauthorized(c *gin.Context, message string) {
	response := gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	}
	if correlationID := GetCorrelationID(c); correlationID != "" {
		response["correlation_id"] = correlationID
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, response)
}
