// internal/repository/postgres/guide_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"ims-service/internal/domain/guide"
	xerrors "ims-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GuideRepository struct {
	db *pgxpool.Pool
}

func NewGuideRepository(db *pgxpool.Pool) *GuideRepository {
	return &GuideRepository{db: db}
}

const assignmentColumns = `id, application_id, student_id, guide_id, status, assigned_by,
	started_at, created_at, updated_at`

func scanAssignment(row pgx.Row) (*guide.Assignment, error) {
	var a guide.Assignment
	err := row.Scan(
		&a.ID, &a.ApplicationID, &a.StudentID, &a.GuideID, &a.Status,
		&a.AssignedBy, &a.StartedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan assignment: %w", err)
	}
	return &a, nil
}

func (r *GuideRepository) CreateAssignment(ctx context.Context, a *guide.Assignment) error {
	query := `
		INSERT INTO guide_assignments (application_id, student_id, guide_id, status, assigned_by, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		a.ApplicationID, a.StudentID, a.GuideID, a.Status, a.AssignedBy, a.StartedAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (r *GuideRepository) FindAssignmentByID(ctx context.Context, id int64) (*guide.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM guide_assignments WHERE id = $1`, assignmentColumns)
	return scanAssignment(r.db.QueryRow(ctx, query, id))
}

func (r *GuideRepository) FindAssignmentByApplication(ctx context.Context, applicationID int64) (*guide.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM guide_assignments WHERE application_id = $1`, assignmentColumns)
	return scanAssignment(r.db.QueryRow(ctx, query, applicationID))
}

func (r *GuideRepository) ListByStudent(ctx context.Context, studentID int64) ([]guide.Assignment, error) {
	return r.listAssignments(ctx, "student_id", studentID)
}

func (r *GuideRepository) ListByGuide(ctx context.Context, guideID int64) ([]guide.Assignment, error) {
	return r.listAssignments(ctx, "guide_id", guideID)
}

func (r *GuideRepository) listAssignments(ctx context.Context, column string, id int64) ([]guide.Assignment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM guide_assignments
		WHERE %s = $1
		ORDER BY created_at DESC
	`, assignmentColumns, column)

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	assignments := []guide.Assignment{}
	for rows.Next() {
		var a guide.Assignment
		if err := rows.Scan(
			&a.ID, &a.ApplicationID, &a.StudentID, &a.GuideID, &a.Status,
			&a.AssignedBy, &a.StartedAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *GuideRepository) UpdateAssignmentStatus(ctx context.Context, id int64, status guide.AssignmentStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE guide_assignments SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *GuideRepository) AddFeedback(ctx context.Context, f *guide.FeedbackEntry) error {
	query := `
		INSERT INTO guide_feedback (assignment_id, guide_id, comment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, f.AssignmentID, f.GuideID, f.Comment).
		Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add feedback: %w", err)
	}
	return nil
}

func (r *GuideRepository) ListFeedback(ctx context.Context, assignmentID int64) ([]guide.FeedbackEntry, error) {
	query := `
		SELECT id, assignment_id, guide_id, comment, created_at
		FROM guide_feedback
		WHERE assignment_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	entries := []guide.FeedbackEntry{}
	for rows.Next() {
		var f guide.FeedbackEntry
		if err := rows.Scan(&f.ID, &f.AssignmentID, &f.GuideID, &f.Comment, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		entries = append(entries, f)
	}
	return entries, rows.Err()
}

const weeklyLogColumns = `id, assignment_id, week, work_summary, achievements, challenges,
	next_week_plan, status, guide_comment, submitted_at, created_at, updated_at`

func scanWeeklyLog(row pgx.Row) (*guide.WeeklyLog, error) {
	var l guide.WeeklyLog
	err := row.Scan(
		&l.ID, &l.AssignmentID, &l.Week, &l.WorkSummary, &l.Achievements, &l.Challenges,
		&l.NextWeekPlan, &l.Status, &l.GuideComment, &l.SubmittedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan weekly log: %w", err)
	}
	return &l, nil
}

func (r *GuideRepository) CreateWeeklyLog(ctx context.Context, l *guide.WeeklyLog) error {
	query := `
		INSERT INTO weekly_logs (assignment_id, week, work_summary, achievements, challenges,
			next_week_plan, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		l.AssignmentID, l.Week, l.WorkSummary, l.Achievements, l.Challenges,
		l.NextWeekPlan, l.Status, l.SubmittedAt,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create weekly log: %w", err)
	}
	return nil
}

func (r *GuideRepository) FindWeeklyLog(ctx context.Context, assignmentID int64, week int) (*guide.WeeklyLog, error) {
	query := fmt.Sprintf(`SELECT %s FROM weekly_logs WHERE assignment_id = $1 AND week = $2`, weeklyLogColumns)
	return scanWeeklyLog(r.db.QueryRow(ctx, query, assignmentID, week))
}

func (r *GuideRepository) FindWeeklyLogByID(ctx context.Context, id int64) (*guide.WeeklyLog, error) {
	query := fmt.Sprintf(`SELECT %s FROM weekly_logs WHERE id = $1`, weeklyLogColumns)
	return scanWeeklyLog(r.db.QueryRow(ctx, query, id))
}

func (r *GuideRepository) ListWeeklyLogs(ctx context.Context, assignmentID int64) ([]guide.WeeklyLog, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM weekly_logs
		WHERE assignment_id = $1
		ORDER BY week
	`, weeklyLogColumns)

	rows, err := r.db.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly logs: %w", err)
	}
	defer rows.Close()

	logs := []guide.WeeklyLog{}
	for rows.Next() {
		var l guide.WeeklyLog
		if err := rows.Scan(
			&l.ID, &l.AssignmentID, &l.Week, &l.WorkSummary, &l.Achievements, &l.Challenges,
			&l.NextWeekPlan, &l.Status, &l.GuideComment, &l.SubmittedAt, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan weekly log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *GuideRepository) UpdateWeeklyLog(ctx context.Context, l *guide.WeeklyLog) error {
	query := `
		UPDATE weekly_logs
		SET work_summary = $2, achievements = $3, challenges = $4, next_week_plan = $5,
			status = $6, guide_comment = $7, submitted_at = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		l.ID, l.WorkSummary, l.Achievements, l.Challenges, l.NextWeekPlan,
		l.Status, l.GuideComment, l.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update weekly log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
