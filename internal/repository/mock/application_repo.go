// internal/repository/mock/application_repo.go
package mock

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"ims-service/internal/domain/application"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/storage"
)

const applicationsKey = "mock_applications"

type ApplicationRepository struct {
	col *collection[application.Application]
}

func NewApplicationRepository(store storage.Store, latency time.Duration) *ApplicationRepository {
	return &ApplicationRepository{col: newCollection[application.Application](store, applicationsKey, latency)}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}

	for _, existing := range items {
		if existing.StudentID == a.StudentID && existing.InternshipID == a.InternshipID {
			return xerrors.ErrDuplicateEntry
		}
	}

	now := time.Now().UTC()
	a.ID = nextID(items, func(a application.Application) int64 { return a.ID })
	a.CreatedAt = now
	a.UpdatedAt = now

	return r.col.save(ctx, append(items, *a))
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id int64) (*application.Application, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			a := items[i]
			return &a, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *ApplicationRepository) FindByStudentAndInternship(ctx context.Context, studentID, internshipID int64) (*application.Application, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].StudentID == studentID && items[i].InternshipID == internshipID {
			a := items[i]
			return &a, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]application.Application, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}

	out := []application.Application{}
	for _, a := range items {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ApplicationRepository) List(ctx context.Context, filters *application.ListFilters) ([]application.Application, int64, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, 0, err
	}

	var statusFilter application.Status
	if filters.Status != "" {
		st, ok := application.NormalizeStatus(filters.Status)
		if !ok {
			return nil, 0, xerrors.ErrInvalidInput
		}
		statusFilter = st
	}

	matched := []application.Application{}
	for _, a := range items {
		if filters.InternshipID != 0 && a.InternshipID != filters.InternshipID {
			continue
		}
		if filters.StudentID != 0 && a.StudentID != filters.StudentID {
			continue
		}
		if statusFilter != "" && a.Status != statusFilter {
			continue
		}
		matched = append(matched, a)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	page, pageSize := normalizePage(filters.Page, filters.PageSize)
	return paginate(matched, page, pageSize), total, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status application.Status) error {
	return r.mutate(ctx, id, func(a *application.Application) {
		a.Status = status
	})
}

func (r *ApplicationRepository) SetOfferLetter(ctx context.Context, id int64, offerLetter string) error {
	return r.mutate(ctx, id, func(a *application.Application) {
		a.OfferLetter = sql.NullString{String: offerLetter, Valid: offerLetter != ""}
	})
}

func (r *ApplicationRepository) mutate(ctx context.Context, id int64, fn func(*application.Application)) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			fn(&items[i])
			items[i].UpdatedAt = time.Now().UTC()
			return r.col.save(ctx, items)
		}
	}
	return xerrors.ErrNotFound
}
