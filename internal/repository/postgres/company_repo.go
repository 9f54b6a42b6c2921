// internal/repository/postgres/company_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ims-service/internal/domain/company"
	xerrors "ims-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CompanyRepository struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, recruiter_user_id, name, industry, website, description,
	hr_name, hr_email, hr_phone, locations, status, status_reason, decided_by,
	created_at, updated_at`

func scanCompany(row pgx.Row) (*company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.RecruiterUserID, &c.Name, &c.Industry, &c.Website, &c.Description,
		&c.HRName, &c.HREmail, &c.HRPhone, &c.Locations, &c.Status, &c.StatusReason,
		&c.DecidedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan company: %w", err)
	}
	return &c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (recruiter_user_id, name, industry, website, description,
			hr_name, hr_email, hr_phone, locations, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.RecruiterUserID, c.Name, c.Industry, c.Website, c.Description,
		c.HRName, c.HREmail, c.HRPhone, c.Locations, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*company.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE id = $1`, companyColumns)
	return scanCompany(r.db.QueryRow(ctx, query, id))
}

func (r *CompanyRepository) FindByRecruiter(ctx context.Context, recruiterUserID int64) (*company.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE recruiter_user_id = $1`, companyColumns)
	return scanCompany(r.db.QueryRow(ctx, query, recruiterUserID))
}

func (r *CompanyRepository) List(ctx context.Context, filters *company.ListFilters) ([]company.Company, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filters.Status)
		argPos++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR industry ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM companies WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	query := fmt.Sprintf(`
		SELECT %s FROM companies
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, companyColumns, where, argPos, argPos+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := []company.Company{}
	for rows.Next() {
		var c company.Company
		if err := rows.Scan(
			&c.ID, &c.RecruiterUserID, &c.Name, &c.Industry, &c.Website, &c.Description,
			&c.HRName, &c.HREmail, &c.HRPhone, &c.Locations, &c.Status, &c.StatusReason,
			&c.DecidedBy, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) error {
	query := `
		UPDATE companies
		SET name = $2, industry = $3, website = $4, description = $5,
			hr_name = $6, hr_email = $7, hr_phone = $8, locations = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Industry, c.Website, c.Description,
		c.HRName, c.HREmail, c.HRPhone, c.Locations,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) UpdateStatus(ctx context.Context, id int64, status company.Status, reason string, decidedBy int64) error {
	query := `
		UPDATE companies
		SET status = $2, status_reason = NULLIF($3, ''), decided_by = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, status, reason, decidedBy)
	if err != nil {
		return fmt.Errorf("failed to update company status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
