// internal/domain/internship/repository.go
package internship

import "context"

type Repository interface {
	Create(ctx context.Context, in *Internship) error
	FindByID(ctx context.Context, id int64) (*Internship, error)
	Update(ctx context.Context, in *Internship) error
	UpdateStatus(ctx context.Context, id int64, status Status, remarks string, decidedBy int64) error
	List(ctx context.Context, filters *ListFilters) ([]Internship, int64, error)
	Stats(ctx context.Context) (*Stats, error)
}
