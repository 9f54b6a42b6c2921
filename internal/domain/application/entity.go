// internal/domain/application/entity.go
package application

import (
	"database/sql"
	"strings"
	"time"
)

// Status is the canonical application lifecycle. Legacy selectors coming in
// from older clients (APPLIED, OFFER_RECEIVED) are folded into canonical
// values at the boundary by NormalizeStatus and never stored.
type Status string

const (
	StatusSubmitted   Status = "SUBMITTED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusShortlisted Status = "SHORTLISTED"
	StatusAccepted    Status = "ACCEPTED"
	StatusActive      Status = "ACTIVE"
	StatusRejected    Status = "REJECTED"
	StatusArchived    Status = "ARCHIVED"
)

var statusAliases = map[string]Status{
	"SUBMITTED":      StatusSubmitted,
	"APPLIED":        StatusSubmitted,
	"UNDER_REVIEW":   StatusUnderReview,
	"SHORTLISTED":    StatusShortlisted,
	"ACCEPTED":       StatusAccepted,
	"OFFER_RECEIVED": StatusAccepted,
	"ACTIVE":         StatusActive,
	"REJECTED":       StatusRejected,
	"ARCHIVED":       StatusArchived,
}

// NormalizeStatus resolves a status selector, alias-aware.
func NormalizeStatus(s string) (Status, bool) {
	st, ok := statusAliases[strings.ToUpper(strings.TrimSpace(s))]
	return st, ok
}

// CanTransition validates status advances. Terminal states never advance.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusSubmitted:
		return to == StatusUnderReview || to == StatusShortlisted || to == StatusRejected
	case StatusUnderReview:
		return to == StatusShortlisted || to == StatusRejected
	case StatusShortlisted:
		return to == StatusAccepted || to == StatusRejected
	case StatusAccepted:
		return to == StatusActive || to == StatusArchived
	case StatusActive:
		return to == StatusArchived
	}
	return false
}

type Application struct {
	ID           int64          `json:"id" db:"id"`
	InternshipID int64          `json:"internship_id" db:"internship_id"`
	StudentID    int64          `json:"student_id" db:"student_id"`
	Status       Status         `json:"status" db:"status"`
	ResumeLink   string         `json:"resume_link" db:"resume_link"`
	OfferLetter  sql.NullString `json:"offer_letter,omitempty" db:"offer_letter"`
	CoverNote    sql.NullString `json:"cover_note,omitempty" db:"cover_note"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}
