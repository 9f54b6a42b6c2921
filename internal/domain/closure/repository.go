// internal/domain/closure/repository.go
package closure

import "context"

type Repository interface {
	Create(ctx context.Context, c *Closure) error
	FindByID(ctx context.Context, id int64) (*Closure, error)
	FindByAssignment(ctx context.Context, assignmentID int64) (*Closure, error)
	ListByStatus(ctx context.Context, status Status) ([]Closure, error)
	Update(ctx context.Context, c *Closure) error
}
