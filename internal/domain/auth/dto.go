// internal/domain/auth/dto.go
package auth

import "time"

type LoginRequest struct {
	Email    string `json:"email" form:"username" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
	// Portal (or expected role) the user logged in through. Optional; when
	// present the authenticated role must be admitted by it.
	Portal    string `json:"portal" form:"portal"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserInfo  `json:"user"`
}

// UserInfo is the profile slice merged into the session on login.
type UserInfo struct {
	ID           int64  `json:"id"`
	FullName     string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	CompanyName  string `json:"company_name,omitempty"`
	HRName       string `json:"hr_name,omitempty"`
	DepartmentID int64  `json:"department_id,omitempty"`
}

// RegisterRequest creates a recruiter/company account via the corporate
// portal.
type RegisterRequest struct {
	FullName    string `json:"name" binding:"required,max=255"`
	Email       string `json:"email" binding:"required,email,max=255"`
	Password    string `json:"password" binding:"required,min=8"`
	CompanyName string `json:"company_name" binding:"required,max=255"`
	HRName      string `json:"hr_name" binding:"max=255"`
	IPAddress   string `json:"-"`
	UserAgent   string `json:"-"`
}

type RegisterStudentRequest struct {
	FullName     string `json:"name" binding:"required,max=255"`
	Email        string `json:"email" binding:"required,email,max=255"`
	Password     string `json:"password" binding:"required,min=8"`
	DepartmentID int64  `json:"department_id"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	FullName    *string `json:"name" binding:"omitempty,max=255"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=255"`
	HRName      *string `json:"hr_name" binding:"omitempty,max=255"`
}
