// internal/repository/postgres/internship_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ims-service/internal/domain/internship"
	xerrors "ims-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InternshipRepository struct {
	db *pgxpool.Pool
}

func NewInternshipRepository(db *pgxpool.Pool) *InternshipRepository {
	return &InternshipRepository{db: db}
}

const internshipColumns = `id, title, description, status, department, location, location_type,
	stipend, duration_weeks, skills, corporate_id, company_id,
	remarks, decided_by, decided_at, created_at, updated_at`

func scanInternship(row pgx.Row) (*internship.Internship, error) {
	var in internship.Internship
	err := row.Scan(
		&in.ID, &in.Title, &in.Description, &in.Status, &in.Department,
		&in.Location, &in.LocationType, &in.Stipend, &in.DurationWeeks, &in.Skills,
		&in.CorporateID, &in.CompanyID,
		&in.Remarks, &in.DecidedBy, &in.DecidedAt, &in.CreatedAt, &in.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan internship: %w", err)
	}
	return &in, nil
}

func (r *InternshipRepository) Create(ctx context.Context, in *internship.Internship) error {
	query := `
		INSERT INTO internships (title, description, status, department, location, location_type,
			stipend, duration_weeks, skills, corporate_id, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		in.Title, in.Description, in.Status, in.Department, in.Location, in.LocationType,
		in.Stipend, in.DurationWeeks, in.Skills, in.CorporateID, in.CompanyID,
	).Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create internship: %w", err)
	}
	return nil
}

func (r *InternshipRepository) FindByID(ctx context.Context, id int64) (*internship.Internship, error) {
	query := fmt.Sprintf(`SELECT %s FROM internships WHERE id = $1`, internshipColumns)
	return scanInternship(r.db.QueryRow(ctx, query, id))
}

func (r *InternshipRepository) Update(ctx context.Context, in *internship.Internship) error {
	query := `
		UPDATE internships
		SET title = $2, description = $3, status = $4, department = $5, location = $6,
			location_type = $7, stipend = $8, duration_weeks = $9, skills = $10, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		in.ID, in.Title, in.Description, in.Status, in.Department, in.Location,
		in.LocationType, in.Stipend, in.DurationWeeks, in.Skills,
	)
	if err != nil {
		return fmt.Errorf("failed to update internship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *InternshipRepository) UpdateStatus(ctx context.Context, id int64, status internship.Status, remarks string, decidedBy int64) error {
	query := `
		UPDATE internships
		SET status = $2, remarks = NULLIF($3, ''), decided_by = NULLIF($4, 0)::bigint,
			decided_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, status, remarks, decidedBy)
	if err != nil {
		return fmt.Errorf("failed to update internship status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *InternshipRepository) List(ctx context.Context, filters *internship.ListFilters) ([]internship.Internship, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filters.Status)
		argPos++
	}
	if filters.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argPos))
		args = append(args, filters.Department)
		argPos++
	}
	if filters.CorporateID != 0 {
		conditions = append(conditions, fmt.Sprintf("corporate_id = $%d", argPos))
		args = append(args, filters.CorporateID)
		argPos++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM internships WHERE %s`, whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count internships: %w", err)
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	query := fmt.Sprintf(`
		SELECT %s FROM internships
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, internshipColumns, whereClause, argPos, argPos+1)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list internships: %w", err)
	}
	defer rows.Close()

	internships := []internship.Internship{}
	for rows.Next() {
		var in internship.Internship
		if err := rows.Scan(
			&in.ID, &in.Title, &in.Description, &in.Status, &in.Department,
			&in.Location, &in.LocationType, &in.Stipend, &in.DurationWeeks, &in.Skills,
			&in.CorporateID, &in.CompanyID,
			&in.Remarks, &in.DecidedBy, &in.DecidedAt, &in.CreatedAt, &in.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan internship: %w", err)
		}
		internships = append(internships, in)
	}
	return internships, total, rows.Err()
}

func (r *InternshipRepository) Stats(ctx context.Context) (*internship.Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'APPROVED'),
			COUNT(*) FILTER (WHERE status = 'REJECTED'),
			COUNT(*) FILTER (WHERE status = 'CLOSED')
		FROM internships
	`

	var s internship.Stats
	if err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.Pending, &s.Approved, &s.Rejected, &s.Closed); err != nil {
		return nil, fmt.Errorf("failed to get internship stats: %w", err)
	}
	return &s, nil
}
