// internal/domain/auth/entity.go
package auth

import (
	"database/sql"
	"time"
)

// User is an IMS account. One table backs every role; recruiter and staff
// specific fields are nullable.
type User struct {
	ID           int64  `json:"id" db:"id"`
	FullName     string `json:"name" db:"full_name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"role" db:"role"`
	Status       string `json:"status" db:"status"` // active, inactive, suspended

	// Recruiter fields
	CompanyName sql.NullString `json:"company_name,omitempty" db:"company_name"`
	HRName      sql.NullString `json:"hr_name,omitempty" db:"hr_name"`

	// Staff/student fields
	DepartmentID sql.NullInt64 `json:"department_id,omitempty" db:"department_id"`

	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
	LastLogin sql.NullTime `json:"last_login,omitempty" db:"last_login"`
}

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)
