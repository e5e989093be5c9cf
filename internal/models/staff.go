package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentStatus string

const (
	EmploymentActive   EmploymentStatus = "active"
	EmploymentInactive EmploymentStatus = "inactive"
	EmploymentResigned EmploymentStatus = "resigned"
)

type Trainer struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Gender           Gender           `json:"gender"`
	EmploymentStatus EmploymentStatus `json:"employment_status"`
	HireDate         string           `json:"hire_date"`
	BaseSalary       decimal.Decimal  `json:"base_salary"`
	KakaoID          string           `json:"kakao_id"`
	Specialties      string           `json:"specialties"`
	Certifications   string           `json:"certifications"`
	ExperienceYears  int              `json:"experience_years"`
	Notes            string           `json:"notes"`
	Branch           BranchField      `json:"branch"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

type Salary struct {
	ID                int64           `json:"id"`
	Trainer           json.RawMessage `json:"trainer"`
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	BaseSalary        decimal.Decimal `json:"base_salary"`
	IncentiveAmount   decimal.Decimal `json:"incentive_amount"`
	AdditionalRevenue decimal.Decimal `json:"additional_revenue"`
	OtherCosts        decimal.Decimal `json:"other_costs"`
	TotalSalary       decimal.Decimal `json:"total_salary"`
	PaymentStatus     PaymentStatus   `json:"payment_status"`
	PaymentDate       *string         `json:"payment_date,omitempty"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
