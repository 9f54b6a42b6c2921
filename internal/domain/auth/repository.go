// internal/domain/auth/repository.go
package auth

import "context"

// UserRepository is implemented by the postgres repository and by the
// blob-store mock repository used in offline/demo mode.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, req *UpdateProfileRequest) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateLastLogin(ctx context.Context, id int64) error
	ListByRole(ctx context.Context, role Role) ([]User, error)
}
