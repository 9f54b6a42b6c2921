// internal/service/guide/service.go
package guide

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ims-service/internal/domain/application"
	"ims-service/internal/domain/auth"
	"ims-service/internal/domain/guide"
	notif "ims-service/internal/domain/notification"
	xerrors "ims-service/internal/pkg/errors"
	notifsvc "ims-service/internal/service/notification"

	"go.uber.org/zap"
)

type GuideService struct {
	repo          guide.Repository
	applications  application.Repository
	users         auth.UserRepository
	notifications *notifsvc.NotificationService
	logger        *zap.Logger
}

func NewGuideService(
	repo guide.Repository,
	applications application.Repository,
	users auth.UserRepository,
	notifications *notifsvc.NotificationService,
	logger *zap.Logger,
) *GuideService {
	return &GuideService{
		repo:          repo,
		applications:  applications,
		users:         users,
		notifications: notifications,
		logger:        logger,
	}
}

// Assign binds a faculty guide to a student's active internship. One
// assignment per application; the guide must hold the FACULTY role.
func (s *GuideService) Assign(ctx context.Context, assignedBy int64, req *guide.AssignRequest) (*guide.Assignment, error) {
	app, err := s.applications.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != application.StatusActive {
		return nil, fmt.Errorf("%w: guide assignment requires an active internship", xerrors.ErrConflict)
	}

	guideUser, err := s.users.FindByID(ctx, req.GuideID)
	if err != nil {
		return nil, err
	}
	if guideUser.Role != auth.RoleFaculty {
		return nil, fmt.Errorf("%w: assigned guide must be faculty", xerrors.ErrInvalidInput)
	}

	a := &guide.Assignment{
		ApplicationID: req.ApplicationID,
		StudentID:     app.StudentID,
		GuideID:       req.GuideID,
		Status:        guide.StatusInProgress,
		AssignedBy:    assignedBy,
		StartedAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateAssignment(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("guide assigned",
		zap.Int64("assignment_id", a.ID),
		zap.Int64("student_id", a.StudentID),
		zap.Int64("guide_id", a.GuideID),
	)

	s.notifications.Notify(ctx, a.StudentID, notif.TypeInfo, "guides",
		"Guide assigned",
		fmt.Sprintf("%s has been assigned as your internship guide.", guideUser.FullName))
	s.notifications.Notify(ctx, a.GuideID, notif.TypeInfo, "guides",
		"New mentee", "A new internship student has been assigned to you.")

	return a, nil
}

// Get returns one assignment with its feedback trail. Visible to the
// student, the guide and staff only.
func (s *GuideService) Get(ctx context.Context, id, requesterID int64, privileged bool) (*guide.Assignment, error) {
	a, err := s.repo.FindAssignmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !privileged && a.StudentID != requesterID && a.GuideID != requesterID {
		return nil, xerrors.ErrNotFound
	}
	if err := s.refreshOverdue(ctx, a, time.Now().UTC()); err != nil {
		return nil, err
	}

	feedback, err := s.repo.ListFeedback(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Feedback = feedback
	return a, nil
}

// ListForStudent returns the student's assignments with overdue flags
// refreshed.
func (s *GuideService) ListForStudent(ctx context.Context, studentID int64) ([]guide.Assignment, error) {
	assignments, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshOverdueAll(ctx, assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListForGuide returns the guide's mentees with overdue flags refreshed.
func (s *GuideService) ListForGuide(ctx context.Context, guideID int64) ([]guide.Assignment, error) {
	assignments, err := s.repo.ListByGuide(ctx, guideID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshOverdueAll(ctx, assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// refreshOverdue is run on every assignment read: an in-progress assignment
// missing a submitted log for a completed week flips to OVERDUE_LOGS.
func (s *GuideService) refreshOverdue(ctx context.Context, a *guide.Assignment, now time.Time) error {
	if a.Status != guide.StatusInProgress {
		return nil
	}
	overdue, err := s.hasOverdueLogs(ctx, a, now)
	if err != nil {
		return err
	}
	if !overdue {
		return nil
	}
	if err := s.repo.UpdateAssignmentStatus(ctx, a.ID, guide.StatusOverdueLogs); err != nil {
		return err
	}
	a.Status = guide.StatusOverdueLogs
	return nil
}

func (s *GuideService) refreshOverdueAll(ctx context.Context, assignments []guide.Assignment) error {
	now := time.Now().UTC()
	for i := range assignments {
		if err := s.refreshOverdue(ctx, &assignments[i], now); err != nil {
			return err
		}
	}
	return nil
}

// hasOverdueLogs reports whether any completed week lacks a submitted log.
func (s *GuideService) hasOverdueLogs(ctx context.Context, a *guide.Assignment, now time.Time) (bool, error) {
	currentWeek := a.CurrentWeek(now)
	if currentWeek <= 1 {
		return false, nil
	}

	logs, err := s.repo.ListWeeklyLogs(ctx, a.ID)
	if err != nil {
		return false, err
	}

	submitted := map[int]bool{}
	for _, l := range logs {
		if l.Status != guide.LogDraft {
			submitted[l.Week] = true
		}
	}
	for week := 1; week < currentWeek; week++ {
		if !submitted[week] {
			return true, nil
		}
	}
	return false, nil
}

// AddFeedback appends a guide comment on the assignment and notifies the
// student.
func (s *GuideService) AddFeedback(ctx context.Context, assignmentID, guideID int64, req *guide.FeedbackRequest) (*guide.FeedbackEntry, error) {
	a, err := s.repo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if a.GuideID != guideID {
		return nil, xerrors.ErrForbidden
	}

	f := &guide.FeedbackEntry{
		AssignmentID: assignmentID,
		GuideID:      guideID,
		Comment:      req.Comment,
	}
	if err := s.repo.AddFeedback(ctx, f); err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, a.StudentID, notif.TypeInfo, "guides",
		"Guide feedback", "Your guide has left new feedback on your internship.")
	return f, nil
}

// SaveWeeklyLog creates or updates the student's log for a week. Logs
// already reviewed by the guide are frozen; a rejected log reopens for
// resubmission.
func (s *GuideService) SaveWeeklyLog(ctx context.Context, assignmentID, studentID int64, req *guide.WeeklyLogRequest) (*guide.WeeklyLog, error) {
	a, err := s.repo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if a.StudentID != studentID {
		return nil, xerrors.ErrForbidden
	}
	if a.Status == guide.StatusCompleted {
		return nil, fmt.Errorf("%w: internship already completed", xerrors.ErrConflict)
	}
	if req.Week > a.CurrentWeek(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: cannot log a future week", xerrors.ErrInvalidInput)
	}

	status := guide.LogDraft
	if req.Submit {
		status = guide.LogSubmitted
	}

	existing, err := s.repo.FindWeeklyLog(ctx, assignmentID, req.Week)
	if err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		l := &guide.WeeklyLog{
			AssignmentID: assignmentID,
			Week:         req.Week,
			WorkSummary:  req.WorkSummary,
			Achievements: req.Achievements,
			Challenges:   req.Challenges,
			NextWeekPlan: req.NextWeekPlan,
			Status:       status,
		}
		if req.Submit {
			l.SubmittedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		}
		if err := s.repo.CreateWeeklyLog(ctx, l); err != nil {
			return nil, err
		}
		s.afterLogSubmit(ctx, a, l)
		return l, nil
	}

	if existing.Status == guide.LogApproved || existing.Status == guide.LogSubmitted {
		return nil, fmt.Errorf("%w: log for week %d is already submitted", xerrors.ErrConflict, req.Week)
	}

	existing.WorkSummary = req.WorkSummary
	existing.Achievements = req.Achievements
	existing.Challenges = req.Challenges
	existing.NextWeekPlan = req.NextWeekPlan
	existing.Status = status
	existing.GuideComment = sql.NullString{}
	if req.Submit {
		existing.SubmittedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	}
	if err := s.repo.UpdateWeeklyLog(ctx, existing); err != nil {
		return nil, err
	}
	s.afterLogSubmit(ctx, a, existing)
	return existing, nil
}

func (s *GuideService) afterLogSubmit(ctx context.Context, a *guide.Assignment, l *guide.WeeklyLog) {
	if l.Status != guide.LogSubmitted {
		return
	}

	// Submitting a log clears an overdue flag.
	if a.Status == guide.StatusOverdueLogs {
		if err := s.repo.UpdateAssignmentStatus(ctx, a.ID, guide.StatusInProgress); err != nil {
			s.logger.Warn("failed to clear overdue flag",
				zap.Int64("assignment_id", a.ID), zap.Error(err))
		}
	}

	s.notifications.Notify(ctx, a.GuideID, notif.TypeInfo, "weekly_logs",
		"Weekly log submitted",
		fmt.Sprintf("A week %d progress log is awaiting your review.", l.Week))
}

// ListWeeklyLogs returns all logs on an assignment, week-ordered.
func (s *GuideService) ListWeeklyLogs(ctx context.Context, assignmentID, requesterID int64, privileged bool) ([]guide.WeeklyLog, error) {
	a, err := s.repo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if !privileged && a.StudentID != requesterID && a.GuideID != requesterID {
		return nil, xerrors.ErrNotFound
	}
	return s.repo.ListWeeklyLogs(ctx, assignmentID)
}

// ReviewWeeklyLog approves or rejects a submitted log. Only the assigned
// guide may review; a rejection reopens the week for the student.
func (s *GuideService) ReviewWeeklyLog(ctx context.Context, logID, guideID int64, req *guide.LogReviewRequest) (*guide.WeeklyLog, error) {
	l, err := s.repo.FindWeeklyLogByID(ctx, logID)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.FindAssignmentByID(ctx, l.AssignmentID)
	if err != nil {
		return nil, err
	}
	if a.GuideID != guideID {
		return nil, xerrors.ErrForbidden
	}
	if l.Status != guide.LogSubmitted {
		return nil, fmt.Errorf("%w: only submitted logs can be reviewed", xerrors.ErrConflict)
	}

	if req.Approve {
		l.Status = guide.LogApproved
	} else {
		l.Status = guide.LogRejected
	}
	l.GuideComment = sql.NullString{String: req.Comment, Valid: req.Comment != ""}

	if err := s.repo.UpdateWeeklyLog(ctx, l); err != nil {
		return nil, err
	}

	if req.Approve {
		s.notifications.Notify(ctx, a.StudentID, notif.TypeSuccess, "weekly_logs",
			"Weekly log approved",
			fmt.Sprintf("Your week %d log has been approved.", l.Week))
	} else {
		s.notifications.Notify(ctx, a.StudentID, notif.TypeWarning, "weekly_logs",
			"Weekly log needs changes",
			fmt.Sprintf("Your week %d log was returned. Review the guide's comment and resubmit.", l.Week))
	}
	return l, nil
}
