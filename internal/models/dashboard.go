package models

import "github.com/shopspring/decimal"

type ReservationSummary struct {
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type RevenueSummary struct {
	PTRevenue         decimal.Decimal `json:"pt_revenue"`
	MembershipRevenue decimal.Decimal `json:"membership_revenue"`
	AdditionalRevenue decimal.Decimal `json:"additional_revenue"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
}

type SalarySummary struct {
	BaseSalary        decimal.Decimal `json:"base_salary"`
	Incentive         decimal.Decimal `json:"incentive"`
	AdditionalRevenue decimal.Decimal `json:"additional_revenue"`
	OtherCosts        decimal.Decimal `json:"other_costs"`
	TotalSalary       decimal.Decimal `json:"total_salary"`
}

type DashboardOverview struct {
	TotalMembers        int                `json:"total_members"`
	ActiveMembers       int                `json:"active_members"`
	TotalTrainers       int                `json:"total_trainers"`
	MonthlyReservations ReservationSummary `json:"monthly_reservations"`
	MonthlyRevenue      RevenueSummary     `json:"monthly_revenue"`
	MonthlySalary       SalarySummary      `json:"monthly_salary"`
}

type ChartPoint struct {
	Period            string          `json:"period"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	PTRevenue         decimal.Decimal `json:"pt_revenue"`
	MembershipRevenue decimal.Decimal `json:"membership_revenue"`
}

// BranchComparison is passed through as the API shapes it; only HQ operators may read it.
type BranchComparison map[string]any

type RevenueChart struct {
	Period string       `json:"period"`
	Data   []ChartPoint `json:"data"`
}
