// internal/domain/closure/entity.go
package closure

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusEvaluated Status = "EVALUATED"
	StatusCompleted Status = "COMPLETED"
)

// Closure is the final-evaluation and credit-award record ending an
// internship's lifecycle.
type Closure struct {
	ID           int64  `json:"id" db:"id"`
	AssignmentID int64  `json:"assignment_id" db:"assignment_id"`
	StudentID    int64  `json:"student_id" db:"student_id"`
	ReportLink   string `json:"report_link" db:"report_link"`
	Status       Status `json:"status" db:"status"`

	// Guide evaluation
	Score       sql.NullInt64  `json:"score,omitempty" db:"score"`
	Remarks     sql.NullString `json:"remarks,omitempty" db:"remarks"`
	EvaluatedBy sql.NullInt64  `json:"evaluated_by,omitempty" db:"evaluated_by"`
	EvaluatedAt sql.NullTime   `json:"evaluated_at,omitempty" db:"evaluated_at"`

	// Coordinator credit award
	Credits   sql.NullInt64 `json:"credits,omitempty" db:"credits"`
	AwardedBy sql.NullInt64 `json:"awarded_by,omitempty" db:"awarded_by"`
	AwardedAt sql.NullTime  `json:"awarded_at,omitempty" db:"awarded_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
