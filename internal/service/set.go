package service

import (
	"github.com/rs/zerolog"

	"clamood/console/internal/notice"
	"clamood/console/internal/query"
	"clamood/console/internal/resources"
	"clamood/console/internal/session"
)

// Set is every service the console serves pages from.
type Set struct {
	Auth       *AuthService
	Members    *MemberService
	Staff      *StaffService
	Dashboards *DashboardService
	Exports    *ExportService
}

func NewSet(
	api resources.Requester,
	sessions *session.Manager,
	cache *query.Cache,
	notices *notice.Center,
	uploader Uploader,
	log zerolog.Logger,
) Set {
	members := resources.NewMembersAPI(api)
	return Set{
		Auth:       NewAuthService(resources.NewAuthAPI(api), sessions, cache, notices, log),
		Members:    NewMemberService(members, resources.NewBranchesAPI(api), cache, notices, log),
		Staff:      NewStaffService(resources.NewStaffAPI(api), cache),
		Dashboards: NewDashboardService(resources.NewDashboardAPI(api), cache),
		Exports:    NewExportService(members, uploader, log),
	}
}
