package service

import (
	"context"
	"strconv"

	"clamood/console/internal/models"
	"clamood/console/internal/query"
	"clamood/console/internal/resources"
	"clamood/console/internal/session"
)

// StaffService serves the read-only operations pages.
type StaffService struct {
	staff *resources.StaffAPI
	cache *query.Cache
}

func NewStaffService(staff *resources.StaffAPI, cache *query.Cache) *StaffService {
	return &StaffService{staff: staff, cache: cache}
}

func ListKey(r query.Resource, f resources.ListFilter) query.Key {
	return query.NewKey(r, f.Params())
}

func (s *StaffService) Trainers(ctx context.Context, f resources.ListFilter) (models.Page[models.Trainer], error) {
	return query.Get(ctx, s.cache, ListKey(query.ResourceTrainers, f), func(ctx context.Context) (models.Page[models.Trainer], error) {
		return s.staff.Trainers(ctx, f)
	})
}

func (s *StaffService) Reservations(ctx context.Context, f resources.ListFilter) (models.Page[models.Reservation], error) {
	return query.Get(ctx, s.cache, ListKey(query.ResourceReservations, f), func(ctx context.Context) (models.Page[models.Reservation], error) {
		return s.staff.Reservations(ctx, f)
	})
}

func (s *StaffService) Salaries(ctx context.Context, f resources.ListFilter) (models.Page[models.Salary], error) {
	return query.Get(ctx, s.cache, ListKey(query.ResourceSalaries, f), func(ctx context.Context) (models.Page[models.Salary], error) {
		return s.staff.Salaries(ctx, f)
	})
}

func (s *StaffService) Notifications(ctx context.Context, f resources.ListFilter) (models.Page[models.Notification], error) {
	return query.Get(ctx, s.cache, ListKey(query.ResourceNotifications, f), func(ctx context.Context) (models.Page[models.Notification], error) {
		return s.staff.Notifications(ctx, f)
	})
}

type DashboardService struct {
	dashboards *resources.DashboardAPI
	cache      *query.Cache
}

func NewDashboardService(dashboards *resources.DashboardAPI, cache *query.Cache) *DashboardService {
	return &DashboardService{dashboards: dashboards, cache: cache}
}

// ScopeBranch picks the branch a dashboard is drawn for. Branch operators
// always see their own branch; headquarters may pick one or see all (0).
func ScopeBranch(s session.Session, requested int64) int64 {
	if s.IsBranch() && s.Branch() != nil {
		return s.Branch().ID
	}
	return requested
}

func DashboardKey(view string, branchID int64, extra map[string]string) query.Key {
	params := map[string]string{"view": view}
	if branchID > 0 {
		params["branch"] = strconv.FormatInt(branchID, 10)
	}
	for k, v := range extra {
		params[k] = v
	}
	return query.NewKey(query.ResourceDashboard, params)
}

func (s *DashboardService) Overview(ctx context.Context, branchID int64) (models.DashboardOverview, error) {
	return query.Get(ctx, s.cache, DashboardKey("overview", branchID, nil), func(ctx context.Context) (models.DashboardOverview, error) {
		return s.dashboards.Overview(ctx, branchID)
	})
}

func (s *DashboardService) RevenueChart(ctx context.Context, branchID int64, period string) (models.RevenueChart, error) {
	key := DashboardKey("revenue", branchID, map[string]string{"period": period})
	return query.Get(ctx, s.cache, key, func(ctx context.Context) (models.RevenueChart, error) {
		return s.dashboards.RevenueChart(ctx, branchID, period)
	})
}

func (s *DashboardService) BranchComparison(ctx context.Context) (models.BranchComparison, error) {
	return query.Get(ctx, s.cache, DashboardKey("branch-comparison", 0, nil), s.dashboards.BranchComparison)
}
