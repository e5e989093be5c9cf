package resources

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"clamood/console/internal/gateway"
)

// Operation names one call against the REST API.
type Operation string

const (
	OpAuthLogin          Operation = "auth.login"
	OpAuthLogout         Operation = "auth.logout"
	OpAuthMe             Operation = "auth.me"
	OpAuthChangePassword Operation = "auth.change_password"

	OpMemberList   Operation = "members.list"
	OpMemberGet    Operation = "members.get"
	OpMemberCreate Operation = "members.create"
	OpMemberUpdate Operation = "members.update"
	OpMemberDelete Operation = "members.delete"
	OpMemberStats  Operation = "members.stats"

	OpBranchList Operation = "branches.list"
	OpBranchGet  Operation = "branches.get"

	OpTrainerList      Operation = "trainers.list"
	OpReservationList  Operation = "reservations.list"
	OpSalaryList       Operation = "salaries.list"
	OpNotificationList Operation = "notifications.list"

	OpDashboardOverview         Operation = "dashboards.overview"
	OpDashboardRevenueChart     Operation = "dashboards.revenue_chart"
	OpDashboardBranchComparison Operation = "dashboards.branch_comparison"
)

// Endpoint is the fixed method and path template of an operation. "{id}" in
// the template is replaced by the resource id.
type Endpoint struct {
	Operation Operation
	Method    string
	Path      string
}

func (e Endpoint) Expand(id int64) string {
	return strings.Replace(e.Path, "{id}", strconv.FormatInt(id, 10), 1)
}

var endpoints = map[Operation]Endpoint{
	OpAuthLogin:          {OpAuthLogin, http.MethodPost, "/auth/login/"},
	OpAuthLogout:         {OpAuthLogout, http.MethodPost, "/auth/logout/"},
	OpAuthMe:             {OpAuthMe, http.MethodGet, "/auth/me/"},
	OpAuthChangePassword: {OpAuthChangePassword, http.MethodPost, "/auth/change-password/"},

	OpMemberList:   {OpMemberList, http.MethodGet, "/members/members/"},
	OpMemberGet:    {OpMemberGet, http.MethodGet, "/members/members/{id}/"},
	OpMemberCreate: {OpMemberCreate, http.MethodPost, "/members/members/"},
	OpMemberUpdate: {OpMemberUpdate, http.MethodPut, "/members/members/{id}/"},
	OpMemberDelete: {OpMemberDelete, http.MethodDelete, "/members/members/{id}/"},
	OpMemberStats:  {OpMemberStats, http.MethodGet, "/members/members/stats/"},

	OpBranchList: {OpBranchList, http.MethodGet, "/branches/branches/"},
	OpBranchGet:  {OpBranchGet, http.MethodGet, "/branches/branches/{id}/"},

	OpTrainerList:      {OpTrainerList, http.MethodGet, "/trainers/trainers/"},
	OpReservationList:  {OpReservationList, http.MethodGet, "/reservations/reservations/"},
	OpSalaryList:       {OpSalaryList, http.MethodGet, "/salaries/salaries/"},
	OpNotificationList: {OpNotificationList, http.MethodGet, "/notifications/notifications/"},

	OpDashboardOverview:         {OpDashboardOverview, http.MethodGet, "/dashboards/overview/"},
	OpDashboardRevenueChart:     {OpDashboardRevenueChart, http.MethodGet, "/dashboards/revenue-chart/"},
	OpDashboardBranchComparison: {OpDashboardBranchComparison, http.MethodGet, "/dashboards/branch-comparison/"},
}

// Endpoints lists every operation, ordered by name.
func Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(endpoints))
	for _, e := range endpoints {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Endpoint) int {
		return strings.Compare(string(a.Operation), string(b.Operation))
	})
	return out
}

func Lookup(op Operation) (Endpoint, bool) {
	e, ok := endpoints[op]
	return e, ok
}

// Requester sends one request through the gateway.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any, opts ...gateway.Option) error
}

func call(ctx context.Context, r Requester, op Operation, id int64, body, out any, opts ...gateway.Option) error {
	e := endpoints[op]
	return r.Do(ctx, e.Method, e.Expand(id), body, out, opts...)
}
