package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type RegistrationStatus string

const (
	RegistrationActive    RegistrationStatus = "active"
	RegistrationCompleted RegistrationStatus = "completed"
	RegistrationCancelled RegistrationStatus = "cancelled"
	RegistrationExpired   RegistrationStatus = "expired"
)

type PTRegistration struct {
	ID                 int64              `json:"id"`
	Member             json.RawMessage    `json:"member,omitempty"`
	PTProgram          json.RawMessage    `json:"pt_program,omitempty"`
	Trainer            json.RawMessage    `json:"trainer,omitempty"`
	TotalSessions      int                `json:"total_sessions"`
	RemainingSessions  int                `json:"remaining_sessions"`
	TotalPrice         decimal.Decimal    `json:"total_price"`
	PaidAmount         decimal.Decimal    `json:"paid_amount"`
	RegistrationStatus RegistrationStatus `json:"registration_status"`
	RegistrationDate   string             `json:"registration_date"`
	ExpiryDate         *string            `json:"expiry_date,omitempty"`
	Notes              string             `json:"notes"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationRejected  ReservationStatus = "rejected"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
	ReservationNoShow    ReservationStatus = "no_show"
)

type Reservation struct {
	ID                int64             `json:"id"`
	Member            json.RawMessage   `json:"member"`
	Trainer           json.RawMessage   `json:"trainer"`
	PTRegistration    json.RawMessage   `json:"pt_registration,omitempty"`
	Date              string            `json:"date"`
	StartTime         string            `json:"start_time"`
	EndTime           string            `json:"end_time"`
	Duration          int               `json:"duration"`
	ReservationStatus ReservationStatus `json:"reservation_status"`
	RepeatType        string            `json:"repeat_type"`
	RepeatEndDate     *string           `json:"repeat_end_date,omitempty"`
	Notes             string            `json:"notes"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
	NotificationRead    NotificationStatus = "read"
)

type Notification struct {
	ID               int64              `json:"id"`
	NotificationType string             `json:"notification_type"`
	RecipientType    string             `json:"recipient_type"`
	RecipientID      int64              `json:"recipient_id"`
	Title            string             `json:"title"`
	Message          string             `json:"message"`
	Priority         string             `json:"priority"`
	Status           NotificationStatus `json:"status"`
	KakaoSent        bool               `json:"kakao_sent"`
	KakaoSentAt      *time.Time         `json:"kakao_sent_at,omitempty"`
	ReadAt           *time.Time         `json:"read_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
