// internal/domain/guide/entity.go
package guide

import (
	"database/sql"
	"time"
)

type AssignmentStatus string

const (
	StatusInProgress       AssignmentStatus = "IN_PROGRESS"
	StatusClosureSubmitted AssignmentStatus = "CLOSURE_SUBMITTED"
	StatusOverdueLogs      AssignmentStatus = "OVERDUE_LOGS"
	StatusCompleted        AssignmentStatus = "COMPLETED"
)

// Assignment binds a student's active internship application to a faculty
// guide for mentoring and evaluation.
type Assignment struct {
	ID            int64            `json:"id" db:"id"`
	ApplicationID int64            `json:"application_id" db:"application_id"`
	StudentID     int64            `json:"student_id" db:"student_id"`
	GuideID       int64            `json:"guide_id" db:"guide_id"`
	Status        AssignmentStatus `json:"status" db:"status"`
	AssignedBy    int64            `json:"assigned_by" db:"assigned_by"`
	StartedAt     time.Time        `json:"started_at" db:"started_at"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`

	Feedback []FeedbackEntry `json:"feedback,omitempty" db:"-"`
}

type FeedbackEntry struct {
	ID           int64     `json:"id" db:"id"`
	AssignmentID int64     `json:"assignment_id" db:"assignment_id"`
	GuideID      int64     `json:"guide_id" db:"guide_id"`
	Comment      string    `json:"comment" db:"comment"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type LogStatus string

const (
	LogDraft     LogStatus = "DRAFT"
	LogSubmitted LogStatus = "SUBMITTED"
	LogApproved  LogStatus = "APPROVED"
	LogRejected  LogStatus = "REJECTED"
)

// WeeklyLog is one progress report per (assignment, week).
type WeeklyLog struct {
	ID           int64          `json:"id" db:"id"`
	AssignmentID int64          `json:"assignment_id" db:"assignment_id"`
	Week         int            `json:"week" db:"week"`
	WorkSummary  string         `json:"work_summary" db:"work_summary"`
	Achievements string         `json:"achievements" db:"achievements"`
	Challenges   string         `json:"challenges" db:"challenges"`
	NextWeekPlan string         `json:"next_week_plan" db:"next_week_plan"`
	Status       LogStatus      `json:"status" db:"status"`
	GuideComment sql.NullString `json:"guide_comment,omitempty" db:"guide_comment"`
	SubmittedAt  sql.NullTime   `json:"submitted_at,omitempty" db:"submitted_at"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// CurrentWeek computes the 1-based internship week for an assignment at the
// given instant.
func (a *Assignment) CurrentWeek(now time.Time) int {
	if now.Before(a.StartedAt) {
		return 1
	}
	return int(now.Sub(a.StartedAt).Hours()/(24*7)) + 1
}
