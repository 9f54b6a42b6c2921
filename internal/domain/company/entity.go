// internal/domain/company/entity.go
package company

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusBanned   Status = "BANNED"
)

type Company struct {
	ID              int64          `json:"id" db:"id"`
	RecruiterUserID int64          `json:"recruiter_user_id" db:"recruiter_user_id"`
	Name            string         `json:"name" db:"name"`
	Industry        sql.NullString `json:"industry,omitempty" db:"industry"`
	Website         sql.NullString `json:"website,omitempty" db:"website"`
	Description     sql.NullString `json:"description,omitempty" db:"description"`
	HRName          sql.NullString `json:"hr_name,omitempty" db:"hr_name"`
	HREmail         sql.NullString `json:"hr_email,omitempty" db:"hr_email"`
	HRPhone         sql.NullString `json:"hr_phone,omitempty" db:"hr_phone"`
	Locations       pq.StringArray `json:"locations,omitempty" db:"locations"`
	Status          Status         `json:"status" db:"status"`
	StatusReason    sql.NullString `json:"status_reason,omitempty" db:"status_reason"`
	DecidedBy       sql.NullInt64  `json:"decided_by,omitempty" db:"decided_by"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`

	// Display-only ranking heuristic, computed from profile completeness;
	// never persisted.
	TrustScore int `json:"trust_score" db:"-"`
}

// ComputeTrustScore scores profile completeness out of 100. Used only for
// display ranking.
func (c *Company) ComputeTrustScore() int {
	score := 0
	if c.Name != "" {
		score += 20
	}
	if c.Industry.Valid && c.Industry.String != "" {
		score += 10
	}
	if c.Website.Valid && c.Website.String != "" {
		score += 15
	}
	if c.Description.Valid && len(c.Description.String) >= 50 {
		score += 15
	} else if c.Description.Valid && c.Description.String != "" {
		score += 5
	}
	if c.HRName.Valid && c.HRName.String != "" {
		score += 10
	}
	if c.HREmail.Valid && c.HREmail.String != "" {
		score += 10
	}
	if c.HRPhone.Valid && c.HRPhone.String != "" {
		score += 10
	}
	if len(c.Locations) > 0 {
		score += 10
	}
	return score
}
