package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clamood/console/internal/session"
)

type healthResponse struct {
	Status        string `json:"status"`
	Session       string `json:"session"`
	Authenticated bool   `json:"authenticated"`
	CacheEntries  int    `json:"cacheEntries"`
	Environment   string `json:"environment"`
}

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sessionStatus := "ok"
	if p, ok := h.store.(session.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			sessionStatus = "error"
			h.log.Error().Err(err).Msg("session store ping failed")
		}
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:        "ok",
		Session:       sessionStatus,
		Authenticated: h.sessions.IsAuthenticated(),
		CacheEntries:  h.cache.Len(),
		Environment:   h.cfg.Environment,
	})
}
