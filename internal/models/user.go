package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. The role is fixed once a role profile has been attached.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleStudent    = "student"
	RoleTeacher    = "teacher"
	RoleStaff      = "staff"
)

var AllRoles = []string{RoleSuperAdmin, RoleAdmin, RoleStudent, RoleTeacher, RoleStaff}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OrgID        uuid.UUID `json:"org_id" db:"org_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         string    `json:"role" db:"role"`
	IsDeleted    bool      `json:"is_deleted" db:"is_deleted"`
	IsBlocked    bool      `json:"is_blocked" db:"is_blocked"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
