package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"clamood/console/internal/gateway"
)

// Notifier receives the operator-facing notice for a crashed request.
type Notifier interface {
	Error(message string)
}

// Recovery turns a panicking handler into a 500 and the generic notice, so the
// operator sees the failure on the next page like any other one.
func Recovery(log zerolog.Logger, notices Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			event := log.Error().
				Interface("panic", r).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.Writer.Header().Get(requestIDHeader)).
				Bytes("stack", debug.Stack())
			if s := CurrentSession(c); s.IsAuthenticated() {
				event = event.Str("operator", s.User.Username)
			}
			event.Msg("console handler panicked")

			notices.Error(gateway.MsgRequest)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gateway.MsgRequest})
		}()
		c.Next()
	}
}
