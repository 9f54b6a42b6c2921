// internal/service/application/service.go
package application

import (
	"context"
	"database/sql"
	"fmt"

	"ims-service/internal/domain/application"
	"ims-service/internal/domain/internship"
	notif "ims-service/internal/domain/notification"
	xerrors "ims-service/internal/pkg/errors"
	notifsvc "ims-service/internal/service/notification"

	"go.uber.org/zap"
)

type ApplicationService struct {
	repo          application.Repository
	internships   internship.Repository
	notifications *notifsvc.NotificationService
	logger        *zap.Logger
}

func NewApplicationService(
	repo application.Repository,
	internships internship.Repository,
	notifications *notifsvc.NotificationService,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		repo:          repo,
		internships:   internships,
		notifications: notifications,
		logger:        logger,
	}
}

// Apply submits a student's application to an approved posting. One
// application per (student, internship); re-applying is a conflict.
func (s *ApplicationService) Apply(ctx context.Context, studentID int64, req *application.ApplyRequest) (*application.Application, error) {
	in, err := s.internships.FindByID(ctx, req.InternshipID)
	if err != nil {
		return nil, err
	}
	if in.Status != internship.StatusApproved {
		return nil, fmt.Errorf("%w: internship is not open for applications", xerrors.ErrConflict)
	}

	a := &application.Application{
		InternshipID: req.InternshipID,
		StudentID:    studentID,
		Status:       application.StatusSubmitted,
		ResumeLink:   req.ResumeLink,
		CoverNote:    sql.NullString{String: req.CoverNote, Valid: req.CoverNote != ""},
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("application submitted",
		zap.Int64("application_id", a.ID),
		zap.Int64("student_id", studentID),
		zap.Int64("internship_id", req.InternshipID),
	)

	s.notifications.Notify(ctx, in.CorporateID, notif.TypeInfo, "applications",
		"New application",
		fmt.Sprintf("A student applied to %q.", in.Title))

	return a, nil
}

// Get returns one application. Students only see their own.
func (s *ApplicationService) Get(ctx context.Context, id, requesterID int64, privileged bool) (*application.Application, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !privileged && a.StudentID != requesterID {
		return nil, xerrors.ErrNotFound
	}
	return a, nil
}

// ListMine returns the student's applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, studentID int64) ([]application.Application, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// List applies filters with pagination for staff and recruiters.
func (s *ApplicationService) List(ctx context.Context, filters *application.ListFilters) (*application.ListResponse, error) {
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &application.ListResponse{
		Applications: items,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// UpdateStatus advances an application through its lifecycle. The selector
// is alias-aware; illegal transitions are conflicts. The student is
// notified of every advance.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id int64, req *application.StatusUpdateRequest) (*application.Application, error) {
	to, ok := application.NormalizeStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown application status %q", xerrors.ErrInvalidInput, req.Status)
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !application.CanTransition(a.Status, to) {
		return nil, fmt.Errorf("%w: cannot move application from %s to %s", xerrors.ErrConflict, a.Status, to)
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}

	s.logger.Info("application status changed",
		zap.Int64("application_id", id),
		zap.String("from", string(a.Status)),
		zap.String("to", string(to)),
	)

	s.notifyStatus(ctx, a, to)
	a.Status = to
	return a, nil
}

func (s *ApplicationService) notifyStatus(ctx context.Context, a *application.Application, to application.Status) {
	var (
		typ   = notif.TypeInfo
		title = "Application update"
		msg   string
	)
	switch to {
	case application.StatusUnderReview:
		msg = "Your application is now under review."
	case application.StatusShortlisted:
		typ = notif.TypeSuccess
		title = "You have been shortlisted"
		msg = "Your application has been shortlisted. Watch for next steps."
	case application.StatusAccepted:
		typ = notif.TypeSuccess
		title = "Offer received"
		msg = "Congratulations! You have received an offer."
	case application.StatusActive:
		typ = notif.TypeSuccess
		title = "Internship started"
		msg = "Your internship is now active. Weekly progress logs are due from week one."
	case application.StatusRejected:
		typ = notif.TypeError
		title = "Application rejected"
		msg = "Your application was not successful this time."
	case application.StatusArchived:
		msg = "Your application has been archived."
	default:
		return
	}

	s.notifications.Notify(ctx, a.StudentID, typ, "applications", title, msg)
}

// AttachOfferLetter records the offer letter link on an ACCEPTED
// application.
func (s *ApplicationService) AttachOfferLetter(ctx context.Context, id int64, req *application.OfferLetterRequest) (*application.Application, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != application.StatusAccepted && a.Status != application.StatusActive {
		return nil, fmt.Errorf("%w: offer letter requires an accepted application", xerrors.ErrConflict)
	}

	if err := s.repo.SetOfferLetter(ctx, id, req.OfferLetter); err != nil {
		return nil, err
	}

	a.OfferLetter = sql.NullString{String: req.OfferLetter, Valid: true}
	s.notifications.Notify(ctx, a.StudentID, notif.TypeSuccess, "applications",
		"Offer letter available", "Your offer letter has been uploaded.")
	return a, nil
}

// SubmitOfferLetter lets a student attach the offer letter they received.
// Uploading against a shortlisted application advances it to ACCEPTED; an
// already accepted or active one just gets the link replaced.
func (s *ApplicationService) SubmitOfferLetter(ctx context.Context, id, studentID int64, req *application.OfferLetterRequest) (*application.Application, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.StudentID != studentID {
		return nil, xerrors.ErrNotFound
	}

	switch a.Status {
	case application.StatusShortlisted:
		if err := s.repo.UpdateStatus(ctx, id, application.StatusAccepted); err != nil {
			return nil, err
		}
		a.Status = application.StatusAccepted
	case application.StatusAccepted, application.StatusActive:
		// Keep the latest copy of the letter.
	default:
		return nil, fmt.Errorf("%w: offer letter requires a shortlisted application", xerrors.ErrConflict)
	}

	if err := s.repo.SetOfferLetter(ctx, id, req.OfferLetter); err != nil {
		return nil, err
	}
	a.OfferLetter = sql.NullString{String: req.OfferLetter, Valid: true}

	s.logger.Info("offer letter submitted",
		zap.Int64("application_id", id),
		zap.Int64("student_id", studentID),
	)

	if in, err := s.internships.FindByID(ctx, a.InternshipID); err == nil {
		s.notifications.Notify(ctx, in.CorporateID, notif.TypeInfo, "applications",
			"Offer letter uploaded",
			fmt.Sprintf("A student uploaded their offer letter for %q.", in.Title))
	}

	return a, nil
}
