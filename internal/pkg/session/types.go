// internal/pkg/session/types.go
package session

import "time"

// SessionData is the serialized session object persisted through the Store.
// It is the single owner-written record of an authenticated user; the auth
// service is its only writer.
type SessionData struct {
	JTI            string    `json:"jti"`
	UserID         int64     `json:"user_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	Portal         string    `json:"portal,omitempty"`
	CompanyName    string    `json:"company_name,omitempty"`
	HRName         string    `json:"hr_name,omitempty"`
	DepartmentID   int64     `json:"department_id,omitempty"`
	IPAddress      string    `json:"ip_address,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	LoginAt        time.Time `json:"login_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	IsActive       bool      `json:"is_active"`
}
