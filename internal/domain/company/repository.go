// internal/domain/company/repository.go
package company

import "context"

type Repository interface {
	Create(ctx context.Context, c *Company) error
	FindByID(ctx context.Context, id int64) (*Company, error)
	FindByRecruiter(ctx context.Context, recruiterUserID int64) (*Company, error)
	List(ctx context.Context, filters *ListFilters) ([]Company, int64, error)
	Update(ctx context.Context, c *Company) error
	UpdateStatus(ctx context.Context, id int64, status Status, reason string, decidedBy int64) error
}
