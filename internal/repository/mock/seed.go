// internal/repository/mock/seed.go
package mock

import (
	"context"
	"fmt"
	"time"

	"ims-service/internal/domain/auth"
	"ims-service/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type seedAccount struct {
	fullName string
	email    string
	password string
	role     auth.Role
}

// Demo accounts provisioned on first boot of offline mode. The student
// account is the one the demo walkthrough logs in with.
var seedAccounts = []seedAccount{
	{"Demo Student", "student@christ.in", "admin", auth.RoleStudent},
	{"Demo Faculty Guide", "faculty@christ.in", "admin", auth.RoleFaculty},
	{"Demo HOD", "hod@christ.in", "admin", auth.RoleHOD},
	{"Demo Placement Officer", "placement@christ.in", "admin", auth.RolePlacementOffice},
	{"Demo Recruiter", "recruiter@acme.example", "admin", auth.RoleRecruiter},
	{"Demo Coordinator", "coordinator@christ.in", "admin", auth.RoleProgrammeCoordinator},
}

// SeedUsers provisions the demo accounts when the user collection is
// empty. Idempotent: a store that already holds users is left untouched.
func SeedUsers(ctx context.Context, store storage.Store) error {
	col := newCollection[auth.User](store, usersKey, 0)

	users, err := col.load(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	now := time.Now().UTC()
	for i, acc := range seedAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed %s: %w", acc.email, err)
		}
		users = append(users, auth.User{
			ID:           int64(i + 1),
			FullName:     acc.fullName,
			Email:        acc.email,
			PasswordHash: string(hash),
			Role:         acc.role,
			Status:       auth.StatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	return col.save(ctx, users)
}
