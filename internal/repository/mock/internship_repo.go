// internal/repository/mock/internship_repo.go
package mock

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"ims-service/internal/domain/internship"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/storage"
)

const internshipsKey = "mock_internships"

type InternshipRepository struct {
	col *collection[internship.Internship]
}

func NewInternshipRepository(store storage.Store, latency time.Duration) *InternshipRepository {
	return &InternshipRepository{col: newCollection[internship.Internship](store, internshipsKey, latency)}
}

func (r *InternshipRepository) Create(ctx context.Context, in *internship.Internship) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	in.ID = nextID(items, func(i internship.Internship) int64 { return i.ID })
	in.CreatedAt = now
	in.UpdatedAt = now

	return r.col.save(ctx, append(items, *in))
}

func (r *InternshipRepository) FindByID(ctx context.Context, id int64) (*internship.Internship, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			in := items[i]
			return &in, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *InternshipRepository) Update(ctx context.Context, in *internship.Internship) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == in.ID {
			in.CreatedAt = items[i].CreatedAt
			in.UpdatedAt = time.Now().UTC()
			items[i] = *in
			return r.col.save(ctx, items)
		}
	}
	return xerrors.ErrNotFound
}

func (r *InternshipRepository) UpdateStatus(ctx context.Context, id int64, status internship.Status, remarks string, decidedBy int64) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Status = status
			items[i].Remarks = sql.NullString{String: remarks, Valid: remarks != ""}
			items[i].DecidedBy = sql.NullInt64{Int64: decidedBy, Valid: decidedBy != 0}
			items[i].DecidedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
			items[i].UpdatedAt = time.Now().UTC()
			return r.col.save(ctx, items)
		}
	}
	return xerrors.ErrNotFound
}

func (r *InternshipRepository) List(ctx context.Context, filters *internship.ListFilters) ([]internship.Internship, int64, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := []internship.Internship{}
	for _, in := range items {
		if filters.Status != "" && string(in.Status) != strings.ToUpper(filters.Status) {
			continue
		}
		if filters.Department != "" && !strings.EqualFold(in.Department, filters.Department) {
			continue
		}
		if filters.CorporateID != 0 && in.CorporateID != filters.CorporateID {
			continue
		}
		if filters.Search != "" && !matchesSearch(&in, filters.Search) {
			continue
		}
		matched = append(matched, in)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	page, pageSize := normalizePage(filters.Page, filters.PageSize)
	return paginate(matched, page, pageSize), total, nil
}

func matchesSearch(in *internship.Internship, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(in.Title), q) ||
		strings.Contains(strings.ToLower(in.Description), q) {
		return true
	}
	for _, s := range in.Skills {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func (r *InternshipRepository) Stats(ctx context.Context) (*internship.Stats, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}

	stats := &internship.Stats{Total: int64(len(items))}
	for _, in := range items {
		switch in.Status {
		case internship.StatusPending:
			stats.Pending++
		case internship.StatusApproved:
			stats.Approved++
		case internship.StatusRejected:
			stats.Rejected++
		case internship.StatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}

func paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
