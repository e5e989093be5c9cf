package resources

import (
	"context"
	"net/url"
	"strconv"

	"clamood/console/internal/gateway"
	"clamood/console/internal/models"
)

// StaffAPI covers the read-only back-office lists: trainers, reservations,
// salaries and notifications.
type StaffAPI struct {
	r Requester
}

func NewStaffAPI(r Requester) *StaffAPI {
	return &StaffAPI{r: r}
}

func (a *StaffAPI) Trainers(ctx context.Context, f ListFilter) (models.Page[models.Trainer], error) {
	var out models.Page[models.Trainer]
	err := call(ctx, a.r, OpTrainerList, 0, nil, &out, gateway.WithQuery(f.values("employment_status")))
	return out, err
}

func (a *StaffAPI) Reservations(ctx context.Context, f ListFilter) (models.Page[models.Reservation], error) {
	var out models.Page[models.Reservation]
	err := call(ctx, a.r, OpReservationList, 0, nil, &out, gateway.WithQuery(f.values("reservation_status")))
	return out, err
}

func (a *StaffAPI) Salaries(ctx context.Context, f ListFilter) (models.Page[models.Salary], error) {
	var out models.Page[models.Salary]
	err := call(ctx, a.r, OpSalaryList, 0, nil, &out, gateway.WithQuery(f.values("payment_status")))
	return out, err
}

func (a *StaffAPI) Notifications(ctx context.Context, f ListFilter) (models.Page[models.Notification], error) {
	var out models.Page[models.Notification]
	err := call(ctx, a.r, OpNotificationList, 0, nil, &out, gateway.WithQuery(f.values("status")))
	return out, err
}

type DashboardAPI struct {
	r Requester
}

func NewDashboardAPI(r Requester) *DashboardAPI {
	return &DashboardAPI{r: r}
}

func branchQuery(branchID int64) url.Values {
	q := url.Values{}
	if branchID > 0 {
		q.Set("branch_id", strconv.FormatInt(branchID, 10))
	}
	return q
}

func (a *DashboardAPI) Overview(ctx context.Context, branchID int64) (models.DashboardOverview, error) {
	var out models.DashboardOverview
	err := call(ctx, a.r, OpDashboardOverview, 0, nil, &out, gateway.WithQuery(branchQuery(branchID)))
	return out, err
}

// RevenueChart reads "monthly" (last 30 days) or "yearly" (last 12 months) revenue.
func (a *DashboardAPI) RevenueChart(ctx context.Context, branchID int64, period string) (models.RevenueChart, error) {
	q := branchQuery(branchID)
	if period != "" {
		q.Set("period", period)
	}
	var out models.RevenueChart
	err := call(ctx, a.r, OpDashboardRevenueChart, 0, nil, &out, gateway.WithQuery(q))
	return out, err
}

func (a *DashboardAPI) BranchComparison(ctx context.Context) (models.BranchComparison, error) {
	var out models.BranchComparison
	err := call(ctx, a.r, OpDashboardBranchComparison, 0, nil, &out)
	return out, err
}
