// internal/domain/internship/entity.go
package internship

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusClosed   Status = "CLOSED"
)

type LocationType string

const (
	LocationOnsite LocationType = "ONSITE"
	LocationRemote LocationType = "REMOTE"
	LocationHybrid LocationType = "HYBRID"
)

type Internship struct {
	ID          int64        `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Status      Status       `json:"status" db:"status"`
	Department  string       `json:"department" db:"department"`
	Location    string       `json:"location" db:"location"`
	LocationType LocationType `json:"location_type" db:"location_type"`
	Stipend     int64        `json:"stipend" db:"stipend"`
	DurationWeeks int        `json:"duration_weeks" db:"duration_weeks"`
	Skills      pq.StringArray `json:"skills,omitempty" db:"skills"`
	CorporateID int64        `json:"corporate_id" db:"corporate_id"`
	CompanyID   int64        `json:"company_id" db:"company_id"`

	// Placement office decision trail
	Remarks    sql.NullString `json:"remarks,omitempty" db:"remarks"`
	DecidedBy  sql.NullInt64  `json:"decided_by,omitempty" db:"decided_by"`
	DecidedAt  sql.NullTime   `json:"decided_at,omitempty" db:"decided_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CanTransition validates the posting lifecycle.
// DRAFT → PENDING → APPROVED|REJECTED, APPROVED → CLOSED.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusPending
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusClosed
	}
	return false
}

type Stats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Closed   int64 `json:"closed"`
}
