// internal/repository/mock/closure_repo.go
package mock

import (
	"context"
	"sort"
	"time"

	"ims-service/internal/domain/closure"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/storage"
)

const closuresKey = "mock_closures"

type ClosureRepository struct {
	col *collection[closure.Closure]
}

func NewClosureRepository(store storage.Store, latency time.Duration) *ClosureRepository {
	return &ClosureRepository{col: newCollection[closure.Closure](store, closuresKey, latency)}
}

func (r *ClosureRepository) Create(ctx context.Context, c *closure.Closure) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}

	for _, existing := range items {
		if existing.AssignmentID == c.AssignmentID {
			return xerrors.ErrDuplicateEntry
		}
	}

	now := time.Now().UTC()
	c.ID = nextID(items, func(c closure.Closure) int64 { return c.ID })
	c.CreatedAt = now
	c.UpdatedAt = now

	return r.col.save(ctx, append(items, *c))
}

func (r *ClosureRepository) FindByID(ctx context.Context, id int64) (*closure.Closure, error) {
	return r.find(ctx, func(c *closure.Closure) bool { return c.ID == id })
}

func (r *ClosureRepository) FindByAssignment(ctx context.Context, assignmentID int64) (*closure.Closure, error) {
	return r.find(ctx, func(c *closure.Closure) bool { return c.AssignmentID == assignmentID })
}

func (r *ClosureRepository) find(ctx context.Context, match func(*closure.Closure) bool) (*closure.Closure, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(&items[i]) {
			c := items[i]
			return &c, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *ClosureRepository) ListByStatus(ctx context.Context, status closure.Status) ([]closure.Closure, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}

	out := []closure.Closure{}
	for _, c := range items {
		if c.Status == status {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ClosureRepository) Update(ctx context.Context, c *closure.Closure) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == c.ID {
			c.CreatedAt = items[i].CreatedAt
			c.UpdatedAt = time.Now().UTC()
			items[i] = *c
			return r.col.save(ctx, items)
		}
	}
	return xerrors.ErrNotFound
}
