package models

import "time"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipInactive  MembershipStatus = "inactive"
	MembershipSuspended MembershipStatus = "suspended"
	MembershipExpired   MembershipStatus = "expired"
)

type Member struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Gender           Gender           `json:"gender"`
	BirthDate        *string          `json:"birth_date,omitempty"`
	Address          string           `json:"address"`
	EmergencyContact string           `json:"emergency_contact"`
	MembershipStatus MembershipStatus `json:"membership_status"`
	RegistrationDate string           `json:"registration_date"`
	ExpiryDate       *string          `json:"expiry_date,omitempty"`
	Notes            string           `json:"notes"`
	Branch           BranchField      `json:"branch"`
	BranchName       string           `json:"branch_name"`
	PTRegistrations  []PTRegistration `json:"pt_registrations,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// MemberForm is the write payload for create and update. Branch is the branch id.
type MemberForm struct {
	Name             string           `json:"name"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Gender           Gender           `json:"gender"`
	BirthDate        *string          `json:"birth_date,omitempty"`
	Address          string           `json:"address"`
	EmergencyContact string           `json:"emergency_contact"`
	MembershipStatus MembershipStatus `json:"membership_status"`
	ExpiryDate       *string          `json:"expiry_date,omitempty"`
	Notes            string           `json:"notes"`
	Branch           int64            `json:"branch"`
}

type MemberFilter struct {
	Page             int
	Search           string
	MembershipStatus MembershipStatus
	Branch           int64
}

type GenderCount struct {
	Gender Gender `json:"gender"`
	Count  int    `json:"count"`
}

type MemberStats struct {
	TotalMembers         int           `json:"total_members"`
	ActiveMembers        int           `json:"active_members"`
	ExpiredMembers       int           `json:"expired_members"`
	GenderDistribution   []GenderCount `json:"gender_distribution"`
	MonthlyRegistrations int           `json:"monthly_registrations"`
}
