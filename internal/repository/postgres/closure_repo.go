// internal/repository/postgres/closure_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"ims-service/internal/domain/closure"
	xerrors "ims-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClosureRepository struct {
	db *pgxpool.Pool
}

func NewClosureRepository(db *pgxpool.Pool) *ClosureRepository {
	return &ClosureRepository{db: db}
}

const closureColumns = `id, assignment_id, student_id, report_link, status,
	score, remarks, evaluated_by, evaluated_at,
	credits, awarded_by, awarded_at, created_at, updated_at`

func scanClosure(row pgx.Row) (*closure.Closure, error) {
	var c closure.Closure
	err := row.Scan(
		&c.ID, &c.AssignmentID, &c.StudentID, &c.ReportLink, &c.Status,
		&c.Score, &c.Remarks, &c.EvaluatedBy, &c.EvaluatedAt,
		&c.Credits, &c.AwardedBy, &c.AwardedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan closure: %w", err)
	}
	return &c, nil
}

func (r *ClosureRepository) Create(ctx context.Context, c *closure.Closure) error {
	query := `
		INSERT INTO internship_closures (assignment_id, student_id, report_link, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, c.AssignmentID, c.StudentID, c.ReportLink, c.Status).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create closure: %w", err)
	}
	return nil
}

func (r *ClosureRepository) FindByID(ctx context.Context, id int64) (*closure.Closure, error) {
	query := fmt.Sprintf(`SELECT %s FROM internship_closures WHERE id = $1`, closureColumns)
	return scanClosure(r.db.QueryRow(ctx, query, id))
}

func (r *ClosureRepository) FindByAssignment(ctx context.Context, assignmentID int64) (*closure.Closure, error) {
	query := fmt.Sprintf(`SELECT %s FROM internship_closures WHERE assignment_id = $1`, closureColumns)
	return scanClosure(r.db.QueryRow(ctx, query, assignmentID))
}

func (r *ClosureRepository) ListByStatus(ctx context.Context, status closure.Status) ([]closure.Closure, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM internship_closures
		WHERE status = $1
		ORDER BY created_at DESC
	`, closureColumns)

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list closures: %w", err)
	}
	defer rows.Close()

	closures := []closure.Closure{}
	for rows.Next() {
		var c closure.Closure
		if err := rows.Scan(
			&c.ID, &c.AssignmentID, &c.StudentID, &c.ReportLink, &c.Status,
			&c.Score, &c.Remarks, &c.EvaluatedBy, &c.EvaluatedAt,
			&c.Credits, &c.AwardedBy, &c.AwardedAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan closure: %w", err)
		}
		closures = append(closures, c)
	}
	return closures, rows.Err()
}

func (r *ClosureRepository) Update(ctx context.Context, c *closure.Closure) error {
	query := `
		UPDATE internship_closures
		SET report_link = $2, status = $3,
			score = $4, remarks = $5, evaluated_by = $6, evaluated_at = $7,
			credits = $8, awarded_by = $9, awarded_at = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		c.ID, c.ReportLink, c.Status,
		c.Score, c.Remarks, c.EvaluatedBy, c.EvaluatedAt,
		c.Credits, c.AwardedBy, c.AwardedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update closure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
