package middleware

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"clamood/console/internal/guard"
	"clamood/console/internal/session"
)

type navigationKey struct{}

// pending holds the location a request was sent to while it ran.
type pending struct {
	mu   sync.Mutex
	path string
}

func (p *pending) set(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.path == "" {
		p.path = path
	}
}

func (p *pending) get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Navigator records forced navigation for the request carried by ctx. Calls
// outside a request, such as from scheduled jobs, are only logged.
type Navigator struct {
	log zerolog.Logger
}

func NewNavigator(log zerolog.Logger) Navigator {
	return Navigator{log: log}
}

func (n Navigator) Navigate(ctx context.Context, path string) {
	p, ok := ctx.Value(navigationKey{}).(*pending)
	if !ok {
		n.log.Debug().Str("path", path).Msg("navigation outside a request")
		return
	}
	p.set(path)
}

// Navigation is the single place a response turns into a redirect. If the
// handler wrote nothing, the request goes where it was navigated to, or
// failing that wherever the route guard now sends it.
func Navigation(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := &pending{}
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), navigationKey{}, p))

		c.Next()

		if c.Writer.Written() {
			return
		}
		to := p.get()
		if to == "" {
			if d := guard.Resolve(sessions.Get(), c.Request.URL.Path); d.Redirects() {
				to = d.Redirect
			}
		}
		if to != "" {
			c.Redirect(http.StatusSeeOther, to)
		}
	}
}
