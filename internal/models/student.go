package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is the role profile for users with the student role. It is kept in
// its own table because payments and results reference students directly.
type Student struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OrgID        uuid.UUID `json:"org_id" db:"org_id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	ClassName    string    `json:"class_name" db:"class_name"`
	Section      *string   `json:"section" db:"section"`
	Roll         int       `json:"roll" db:"roll"`
	Session      string    `json:"session" db:"session"`
	GuardianName *string   `json:"guardian_name" db:"guardian_name"`
	Phone        *string   `json:"phone" db:"phone"`
	IsDeleted    bool      `json:"is_deleted" db:"is_deleted"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
