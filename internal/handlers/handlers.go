package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"clamood/console/internal/config"
	"clamood/console/internal/guard"
	"clamood/console/internal/middleware"
	"clamood/console/internal/notice"
	"clamood/console/internal/query"
	"clamood/console/internal/service"
	"clamood/console/internal/session"
)

type HandlerSet struct {
	log        zerolog.Logger
	cfg        *config.AppConfig
	auth       *service.AuthService
	members    *service.MemberService
	staff      *service.StaffService
	dashboards *service.DashboardService
	exports    *service.ExportService
	sessions   *session.Manager
	store      session.Store
	notices    *notice.Center
	cache      *query.Cache
	screen     *query.Screen
}

func NewHandlerSet(
	log zerolog.Logger,
	cfg *config.AppConfig,
	services service.Set,
	sessions *session.Manager,
	store session.Store,
	notices *notice.Center,
	cache *query.Cache,
) HandlerSet {
	useJSONFieldNames()

	return HandlerSet{
		log:        log,
		cfg:        cfg,
		auth:       services.Auth,
		members:    services.Members,
		staff:      services.Staff,
		dashboards: services.Dashboards,
		exports:    services.Exports,
		sessions:   sessions,
		store:      store,
		notices:    notices,
		cache:      cache,
		screen:     cache.NewScreen(),
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)
	router.GET("/notices", h.Notices)
	router.POST("/logout", h.Logout)

	pages := router.Group("")
	pages.Use(middleware.Guard(h.sessions))
	{
		pages.GET("/login", h.LoginPage)
		pages.POST("/login", h.Login)

		pages.GET("/", h.Dashboard)
		pages.GET("/analytics", h.Analytics)

		pages.GET("/members", h.ListMembers)
		pages.POST("/members", h.CreateMember)
		pages.POST("/members/export", h.ExportMembers)
		pages.GET("/members/:id", h.GetMember)
		pages.PUT("/members/:id", h.UpdateMember)
		pages.DELETE("/members/:id", h.DeleteMember)

		pages.GET("/trainers", h.Trainers)
		pages.GET("/reservations", h.Reservations)
		pages.GET("/salaries", h.Salaries)
		pages.GET("/notifications", h.Notifications)

		pages.GET("/settings", h.Settings)
		pages.POST("/settings/password", h.ChangePassword)
	}
}

// NoRoute sends unknown paths to the landing page.
func (h HandlerSet) NoRoute(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, guard.HomePath)
}
