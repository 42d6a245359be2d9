package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the role profile for admin, super_admin, teacher and staff
// users. Exactly one profile per user; it follows the user's soft-delete
// lifecycle.
type Profile struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OrgID       uuid.UUID `json:"org_id" db:"org_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Role        string    `json:"role" db:"role"`
	Name        string    `json:"name" db:"name"`
	Phone       *string   `json:"phone" db:"phone"`
	Designation *string   `json:"designation" db:"designation"`
	IsDeleted   bool      `json:"is_deleted" db:"is_deleted"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
