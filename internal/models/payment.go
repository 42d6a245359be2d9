package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment status. Only the pending -> paid transition is modeled.
const (
	PayStatusPending = "pending"
	PayStatusPaid    = "paid"
)

var PayStatuses = []string{PayStatusPending, PayStatusPaid}

// Billing cycles on organization payments.
const (
	BillingMonthly  = "monthly"
	BillingLifetime = "lifetime"
)

var BillingCycles = []string{BillingMonthly, BillingLifetime}

// Student payment types.
const (
	StudentPayAdmission = "admission"
	StudentPayMonthly   = "monthly"
	StudentPayExam      = "exam"
	StudentPayTransport = "transport"
	StudentPayOther     = "other"
)

var StudentPaymentTypes = []string{
	StudentPayAdmission, StudentPayMonthly, StudentPayExam, StudentPayTransport, StudentPayOther,
}

// OrganizationPayment records a subscription payment owed by an organization.
type OrganizationPayment struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	OrganizationID     uuid.UUID `json:"organization" db:"organization_id"`
	SubscriptionStatus string    `json:"subscription_status" db:"subscription_status"` // billing cycle: monthly|lifetime
	Amount             float64   `json:"amount" db:"amount"`
	PayStatus          string    `json:"pay_status" db:"pay_status"`
	PayDate            time.Time `json:"pay_date" db:"pay_date"`
	ExpireAt           time.Time `json:"expire_at" db:"expire_at"`
	IsDeleted          bool      `json:"is_deleted" db:"is_deleted"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// StudentPayment records a fee owed by a student.
type StudentPayment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OrgID       uuid.UUID `json:"org_id" db:"org_id"`
	StudentID   uuid.UUID `json:"student" db:"student_id"`
	PaymentType string    `json:"payment_type" db:"payment_type"`
	Amount      float64   `json:"amount" db:"amount"`
	PayStatus   string    `json:"pay_status" db:"pay_status"`
	PayDate     time.Time `json:"pay_date" db:"pay_date"`
	Month       *string   `json:"month" db:"month"`
	Year        int       `json:"year" db:"year"`
	IsDeleted   bool      `json:"is_deleted" db:"is_deleted"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
