// internal/repository/postgres/application_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ims-service/internal/domain/application"
	xerrors "ims-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicationRepository struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, internship_id, student_id, status, resume_link,
	offer_letter, cover_note, created_at, updated_at`

func scanApplication(row pgx.Row) (*application.Application, error) {
	var a application.Application
	err := row.Scan(
		&a.ID, &a.InternshipID, &a.StudentID, &a.Status, &a.ResumeLink,
		&a.OfferLetter, &a.CoverNote, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan application: %w", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	query := `
		INSERT INTO applications (internship_id, student_id, status, resume_link, cover_note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		a.InternshipID, a.StudentID, a.Status, a.ResumeLink, a.CoverNote,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id int64) (*application.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1`, applicationColumns)
	return scanApplication(r.db.QueryRow(ctx, query, id))
}

func (r *ApplicationRepository) FindByStudentAndInternship(ctx context.Context, studentID, internshipID int64) (*application.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE student_id = $1 AND internship_id = $2`, applicationColumns)
	return scanApplication(r.db.QueryRow(ctx, query, studentID, internshipID))
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]application.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM applications
		WHERE student_id = $1
		ORDER BY created_at DESC
	`, applicationColumns)

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *ApplicationRepository) List(ctx context.Context, filters *application.ListFilters) ([]application.Application, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.InternshipID != 0 {
		conditions = append(conditions, fmt.Sprintf("internship_id = $%d", argPos))
		args = append(args, filters.InternshipID)
		argPos++
	}
	if filters.StudentID != 0 {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", argPos))
		args = append(args, filters.StudentID)
		argPos++
	}
	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filters.Status)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM applications WHERE %s`, whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	query := fmt.Sprintf(`
		SELECT %s FROM applications
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, applicationColumns, whereClause, argPos, argPos+1)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps, err := collectApplications(rows)
	return apps, total, err
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status application.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) SetOfferLetter(ctx context.Context, id int64, offerLetter string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET offer_letter = $2, updated_at = NOW() WHERE id = $1`,
		id, offerLetter,
	)
	if err != nil {
		return fmt.Errorf("failed to set offer letter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func collectApplications(rows pgx.Rows) ([]application.Application, error) {
	apps := []application.Application{}
	for rows.Next() {
		var a application.Application
		if err := rows.Scan(
			&a.ID, &a.InternshipID, &a.StudentID, &a.Status, &a.ResumeLink,
			&a.OfferLetter, &a.CoverNote, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
