package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"clamood/console/internal/middleware"
	"clamood/console/internal/query"
	"clamood/console/internal/resources"
	"clamood/console/internal/service"
)

func listFilter(c *gin.Context) resources.ListFilter {
	page := queryInt(c, "page")
	if page == 0 {
		page = 1
	}
	return resources.ListFilter{
		Page:   page,
		Search: c.Query("search"),
		Status: c.Query("status"),
		Branch: queryInt64(c, "branch"),
	}
}

// listPage serves one of the read-only list pages.
func (h HandlerSet) listPage(c *gin.Context, r query.Resource, fetch func(context.Context, resources.ListFilter) (any, error)) {
	filter := listFilter(c)
	h.screen.Show(c.Request.URL.Path, service.ListKey(r, filter))

	out, err := fetch(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.page(c, gin.H{"list": out, "page": filter.Page})
}

func (h HandlerSet) Trainers(c *gin.Context) {
	h.listPage(c, query.ResourceTrainers, func(ctx context.Context, f resources.ListFilter) (any, error) {
		return h.staff.Trainers(ctx, f)
	})
}

func (h HandlerSet) Reservations(c *gin.Context) {
	h.listPage(c, query.ResourceReservations, func(ctx context.Context, f resources.ListFilter) (any, error) {
		return h.staff.Reservations(ctx, f)
	})
}

func (h HandlerSet) Salaries(c *gin.Context) {
	h.listPage(c, query.ResourceSalaries, func(ctx context.Context, f resources.ListFilter) (any, error) {
		return h.staff.Salaries(ctx, f)
	})
}

func (h HandlerSet) Notifications(c *gin.Context) {
	h.listPage(c, query.ResourceNotifications, func(ctx context.Context, f resources.ListFilter) (any, error) {
		return h.staff.Notifications(ctx, f)
	})
}

func (h HandlerSet) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	branch := service.ScopeBranch(middleware.CurrentSession(c), queryInt64(c, "branch"))
	period := c.DefaultQuery("period", "monthly")
	h.screen.Show(c.Request.URL.Path,
		service.DashboardKey("overview", branch, nil),
		service.DashboardKey("revenue", branch, map[string]string{"period": period}),
	)

	overview, err := h.dashboards.Overview(ctx, branch)
	if err != nil {
		h.fail(c, err)
		return
	}
	revenue, err := h.dashboards.RevenueChart(ctx, branch, period)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.page(c, gin.H{"overview": overview, "revenue": revenue})
}

// Analytics compares branches. The page is open to every operator; the API
// decides whether the numbers are visible.
func (h HandlerSet) Analytics(c *gin.Context) {
	ctx := c.Request.Context()
	h.screen.Show(c.Request.URL.Path,
		service.DashboardKey("branch-comparison", 0, nil),
		service.DashboardKey("revenue", 0, map[string]string{"period": "yearly"}),
	)

	comparison, err := h.dashboards.BranchComparison(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	revenue, err := h.dashboards.RevenueChart(ctx, 0, "yearly")
	if err != nil {
		h.fail(c, err)
		return
	}
	h.page(c, gin.H{"comparison": comparison, "revenue": revenue})
}
