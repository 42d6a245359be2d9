package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription states of an organization. Distinct from the billing cycle
// recorded on OrganizationPayment (monthly/lifetime).
const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

var SubscriptionStatuses = []string{SubscriptionActive, SubscriptionExpired}

// Organization is the tenant root. Every other record is scoped to one
// organization through its org_id column; public routes address it by
// subdomain.
type Organization struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	Name               string     `json:"name" db:"name"`
	Subdomain          string     `json:"subdomain" db:"subdomain"`
	CustomDomain       *string    `json:"custom_domain" db:"custom_domain"`
	LogoURL            *string    `json:"logo_url" db:"logo_url"`
	Plan               string     `json:"plan" db:"plan"`
	SubscriptionStatus string     `json:"subscription_status" db:"subscription_status"`
	ExpiresAt          *time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}
