package middlewares

import (
	"claritycoach/services"

	"github.com/gin-gonic/gin"
)

// SessionHeader carries the session ID between the browser and the
// orchestrator. The middleware echoes it back so a fresh client learns
// the ID minted for it.
const SessionHeader = "X-Session-Id"

// SessionKey is the gin context key the resolved session is stored under.
const SessionKey = "session"

// Session resolves (or mints) the caller's session and sets it in the
// gin context for the controllers.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = c.Query("session")
		}
		sess := services.Store().GetOrCreate(id)
		c.Header(SessionHeader, sess.ID)
		c.Set(SessionKey, sess)
		c.Next()
	}
}

// CurrentSession pulls the session set by the middleware out of the gin
// context.
func CurrentSession(c *gin.Context) *services.Session {
	value, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	sess, _ := value.(*services.Session)
	return sess
}
