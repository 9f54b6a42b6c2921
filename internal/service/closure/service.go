// internal/service/closure/service.go
package closure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ims-service/internal/domain/application"
	"ims-service/internal/domain/closure"
	"ims-service/internal/domain/guide"
	notif "ims-service/internal/domain/notification"
	xerrors "ims-service/internal/pkg/errors"
	notifsvc "ims-service/internal/service/notification"

	"go.uber.org/zap"
)

type ClosureService struct {
	repo          closure.Repository
	assignments   guide.Repository
	applications  application.Repository
	notifications *notifsvc.NotificationService
	logger        *zap.Logger
}

func NewClosureService(
	repo closure.Repository,
	assignments guide.Repository,
	applications application.Repository,
	notifications *notifsvc.NotificationService,
	logger *zap.Logger,
) *ClosureService {
	return &ClosureService{
		repo:          repo,
		assignments:   assignments,
		applications:  applications,
		notifications: notifications,
		logger:        logger,
	}
}

// Submit files the student's final report and moves the assignment to
// CLOSURE_SUBMITTED. One closure per assignment.
func (s *ClosureService) Submit(ctx context.Context, studentID int64, req *closure.SubmitRequest) (*closure.Closure, error) {
	a, err := s.assignments.FindAssignmentByID(ctx, req.AssignmentID)
	if err != nil {
		return nil, err
	}
	if a.StudentID != studentID {
		return nil, xerrors.ErrForbidden
	}
	if a.Status == guide.StatusCompleted || a.Status == guide.StatusClosureSubmitted {
		return nil, fmt.Errorf("%w: closure already submitted", xerrors.ErrConflict)
	}

	c := &closure.Closure{
		AssignmentID: req.AssignmentID,
		StudentID:    studentID,
		ReportLink:   req.ReportLink,
		Status:       closure.StatusPending,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if err := s.assignments.UpdateAssignmentStatus(ctx, a.ID, guide.StatusClosureSubmitted); err != nil {
		return nil, err
	}

	s.logger.Info("closure submitted",
		zap.Int64("closure_id", c.ID),
		zap.Int64("assignment_id", a.ID),
		zap.Int64("student_id", studentID),
	)

	s.notifications.Notify(ctx, a.GuideID, notif.TypeInfo, "closures",
		"Final report submitted", "A mentee has submitted their internship closure report for evaluation.")

	return c, nil
}

// Get returns one closure. Visible to the student, the guide and staff.
func (s *ClosureService) Get(ctx context.Context, id, requesterID int64, privileged bool) (*closure.Closure, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if privileged || c.StudentID == requesterID {
		return c, nil
	}

	a, err := s.assignments.FindAssignmentByID(ctx, c.AssignmentID)
	if err != nil {
		return nil, err
	}
	if a.GuideID != requesterID {
		return nil, xerrors.ErrNotFound
	}
	return c, nil
}

// GetByAssignment resolves the closure filed on an assignment.
func (s *ClosureService) GetByAssignment(ctx context.Context, assignmentID int64) (*closure.Closure, error) {
	return s.repo.FindByAssignment(ctx, assignmentID)
}

// ListPendingEvaluation returns closures awaiting guide evaluation.
func (s *ClosureService) ListPendingEvaluation(ctx context.Context) ([]closure.Closure, error) {
	return s.repo.ListByStatus(ctx, closure.StatusPending)
}

// ListPendingCredits returns evaluated closures awaiting credit award.
func (s *ClosureService) ListPendingCredits(ctx context.Context) ([]closure.Closure, error) {
	return s.repo.ListByStatus(ctx, closure.StatusEvaluated)
}

// Evaluate records the guide's score and remarks on a pending closure.
func (s *ClosureService) Evaluate(ctx context.Context, id, guideID int64, req *closure.EvaluateRequest) (*closure.Closure, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != closure.StatusPending {
		return nil, fmt.Errorf("%w: closure is not awaiting evaluation", xerrors.ErrConflict)
	}

	a, err := s.assignments.FindAssignmentByID(ctx, c.AssignmentID)
	if err != nil {
		return nil, err
	}
	if a.GuideID != guideID {
		return nil, xerrors.ErrForbidden
	}

	now := time.Now().UTC()
	c.Status = closure.StatusEvaluated
	c.Score = sql.NullInt64{Int64: int64(req.Score), Valid: true}
	c.Remarks = sql.NullString{String: req.Remarks, Valid: req.Remarks != ""}
	c.EvaluatedBy = sql.NullInt64{Int64: guideID, Valid: true}
	c.EvaluatedAt = sql.NullTime{Time: now, Valid: true}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, c.StudentID, notif.TypeSuccess, "closures",
		"Internship evaluated",
		fmt.Sprintf("Your guide has evaluated your internship with a score of %d.", req.Score))

	return c, nil
}

// AwardCredits finishes the lifecycle: credits are recorded, the closure
// and assignment complete, and the application archives.
func (s *ClosureService) AwardCredits(ctx context.Context, id, awardedBy int64, req *closure.AwardCreditsRequest) (*closure.Closure, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != closure.StatusEvaluated {
		return nil, fmt.Errorf("%w: credits require an evaluated closure", xerrors.ErrConflict)
	}

	now := time.Now().UTC()
	c.Status = closure.StatusCompleted
	c.Credits = sql.NullInt64{Int64: int64(req.Credits), Valid: true}
	c.AwardedBy = sql.NullInt64{Int64: awardedBy, Valid: true}
	c.AwardedAt = sql.NullTime{Time: now, Valid: true}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err := s.assignments.UpdateAssignmentStatus(ctx, c.AssignmentID, guide.StatusCompleted); err != nil {
		return nil, err
	}

	if a, err := s.assignments.FindAssignmentByID(ctx, c.AssignmentID); err == nil {
		if err := s.applications.UpdateStatus(ctx, a.ApplicationID, application.StatusArchived); err != nil {
			s.logger.Warn("failed to archive application after credit award",
				zap.Int64("application_id", a.ApplicationID), zap.Error(err))
		}
	}

	s.logger.Info("internship completed",
		zap.Int64("closure_id", c.ID),
		zap.Int64("student_id", c.StudentID),
		zap.Int("credits", req.Credits),
	)

	s.notifications.Notify(ctx, c.StudentID, notif.TypeSuccess, "closures",
		"Credits awarded",
		fmt.Sprintf("Your internship is complete. %d credits have been awarded.", req.Credits))

	return c, nil
}
