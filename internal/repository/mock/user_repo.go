// internal/repository/mock/user_repo.go
package mock

import (
	"context"
	"strings"
	"time"

	"ims-service/internal/domain/auth"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/storage"
)

const usersKey = "mock_users"

type UserRepository struct {
	col *collection[auth.User]
}

func NewUserRepository(store storage.Store, latency time.Duration) *UserRepository {
	return &UserRepository{col: newCollection[auth.User](store, usersKey, latency)}
}

func (r *UserRepository) Create(ctx context.Context, u *auth.User) error {
	users, err := r.col.load(ctx)
	if err != nil {
		return err
	}

	for _, existing := range users {
		if strings.EqualFold(existing.Email, u.Email) {
			return xerrors.ErrDuplicateEntry
		}
	}

	now := time.Now().UTC()
	u.ID = nextID(users, func(u auth.User) int64 { return u.ID })
	u.CreatedAt = now
	u.UpdatedAt = now

	return r.col.save(ctx, append(users, *u))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	users, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	users, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, req *auth.UpdateProfileRequest) error {
	return r.mutate(ctx, id, func(u *auth.User) {
		if req.FullName != nil {
			u.FullName = *req.FullName
		}
		if req.CompanyName != nil {
			u.CompanyName.String = *req.CompanyName
			u.CompanyName.Valid = *req.CompanyName != ""
		}
		if req.HRName != nil {
			u.HRName.String = *req.HRName
			u.HRName.Valid = *req.HRName != ""
		}
	})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.mutate(ctx, id, func(u *auth.User) {
		u.PasswordHash = passwordHash
	})
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.mutate(ctx, id, func(u *auth.User) {
		u.Status = status
	})
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	return r.mutate(ctx, id, func(u *auth.User) {
		u.LastLogin.Time = time.Now().UTC()
		u.LastLogin.Valid = true
	})
}

func (r *UserRepository) ListByRole(ctx context.Context, role auth.Role) ([]auth.User, error) {
	users, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []auth.User{}
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepository) mutate(ctx context.Context, id int64, fn func(*auth.User)) error {
	users, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == id {
			fn(&users[i])
			users[i].UpdatedAt = time.Now().UTC()
			return r.col.save(ctx, users)
		}
	}
	return xerrors.ErrNotFound
}
