package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"clamood/console/internal/gateway"
)

// Logger writes one line per console request. Page views and operator actions
// get different messages; failures carry the gateway class that caused them.
func Logger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("request_id", c.Writer.Header().Get(requestIDHeader))

		if loc := c.Writer.Header().Get("Location"); loc != "" {
			event = event.Str("redirect", loc)
		}
		if s := CurrentSession(c); s.IsAuthenticated() {
			event = event.Str("operator", s.User.Username).Str("role", string(s.Role()))
		}
		if err := c.Errors.Last(); err != nil {
			if class := gateway.ClassOf(err.Err); class != "" {
				event = event.Str("class", string(class))
			} else {
				event = event.Err(err.Err)
			}
		}

		msg := "console action"
		if c.Request.Method == http.MethodGet {
			msg = "console page"
		}
		event.Msg(msg)
	}
}
