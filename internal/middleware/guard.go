package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clamood/console/internal/guard"
	"clamood/console/internal/session"
)

const sessionKey = "current_session"

// Guard lets a page through only when the route guard allows it, and puts the
// session it decided on into the context.
func Guard(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Get()
		d := guard.Resolve(s, c.Request.URL.Path)
		if !d.Allow {
			c.Redirect(http.StatusSeeOther, d.Redirect)
			c.Abort()
			return
		}

		c.Set(sessionKey, s)
		c.Next()
	}
}

func CurrentSession(c *gin.Context) session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}
	}
	s, _ := v.(session.Session)
	return s
}
