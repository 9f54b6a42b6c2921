// internal/repository/mock/company_repo.go
package mock

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"ims-service/internal/domain/company"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/storage"
)

const companiesKey = "mock_companies"

type CompanyRepository struct {
	col *collection[company.Company]
}

func NewCompanyRepository(store storage.Store, latency time.Duration) *CompanyRepository {
	return &CompanyRepository{col: newCollection[company.Company](store, companiesKey, latency)}
}

func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}

	for _, existing := range items {
		if existing.RecruiterUserID == c.RecruiterUserID {
			return xerrors.ErrDuplicateEntry
		}
	}

	now := time.Now().UTC()
	c.ID = nextID(items, func(c company.Company) int64 { return c.ID })
	c.CreatedAt = now
	c.UpdatedAt = now

	return r.col.save(ctx, append(items, *c))
}

func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*company.Company, error) {
	return r.find(ctx, func(c *company.Company) bool { return c.ID == id })
}

func (r *CompanyRepository) FindByRecruiter(ctx context.Context, recruiterUserID int64) (*company.Company, error) {
	return r.find(ctx, func(c *company.Company) bool { return c.RecruiterUserID == recruiterUserID })
}

func (r *CompanyRepository) find(ctx context.Context, match func(*company.Company) bool) (*company.Company, error) {
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

func (r *CompanyRepository) List(ctx context.Context, filters *company.ListFilters) ([]company.Company, int64, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := []company.Company{}
	for _, c := range items {
		if filters.Status != "" && string(c.Status) != strings.ToUpper(filters.Status) {
			continue
		}
		if filters.Search != "" {
			q := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(c.Name), q) &&
				!strings.Contains(strings.ToLower(c.Industry.String), q) {
				continue
			}
		}
		matched = append(matched, c)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	page, pageSize := normalizePage(filters.Page, filters.PageSize)
	return paginate(matched, page, pageSize), total, nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) error {
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

func (r *CompanyRepository) UpdateStatus(ctx context.Context, id int64, status company.Status, reason string, decidedBy int64) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Status = status
			items[i].StatusReason = sql.NullString{String: reason, Valid: reason != ""}
			items[i].DecidedBy = sql.NullInt64{Int64: decidedBy, Valid: decidedBy != 0}
			items[i].UpdatedAt = time.Now().UTC()
			return r.col.save(ctx, items)
		}
	}
	return xerrors.ErrNotFound
}
