// internal/service/internship/service.go
package internship

import (
	"context"
	"database/sql"
	"fmt"

	"ims-service/internal/domain/internship"
	notif "ims-service/internal/domain/notification"
	xerrors "ims-service/internal/pkg/errors"
	notifsvc "ims-service/internal/service/notification"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type InternshipService struct {
	repo          internship.Repository
	notifications *notifsvc.NotificationService
	logger        *zap.Logger
}

func NewInternshipService(repo internship.Repository, notifications *notifsvc.NotificationService, logger *zap.Logger) *InternshipService {
	return &InternshipService{repo: repo, notifications: notifications, logger: logger}
}

// Create posts a new internship owned by the recruiter. With Submit set it
// goes straight to PENDING review, otherwise it stays a DRAFT.
func (s *InternshipService) Create(ctx context.Context, corporateID, companyID int64, req *internship.CreateRequest) (*internship.Internship, error) {
	status := internship.StatusDraft
	if req.Submit {
		status = internship.StatusPending
	}

	locationType := internship.LocationType(req.LocationType)
	if locationType == "" {
		locationType = internship.LocationOnsite
	}

	in := &internship.Internship{
		Title:         req.Title,
		Description:   req.Description,
		Status:        status,
		Department:    req.Department,
		Location:      req.Location,
		LocationType:  locationType,
		Stipend:       req.Stipend,
		DurationWeeks: req.DurationWeeks,
		Skills:        pq.StringArray(req.Skills),
		CorporateID:   corporateID,
		CompanyID:     companyID,
	}

	if err := s.repo.Create(ctx, in); err != nil {
		return nil, fmt.Errorf("failed to create internship: %w", err)
	}

	s.logger.Info("internship created",
		zap.Int64("internship_id", in.ID),
		zap.Int64("corporate_id", corporateID),
		zap.String("status", string(in.Status)),
	)
	return in, nil
}

// Get returns a posting. Students and staff only see postings past review;
// the owning recruiter sees everything.
func (s *InternshipService) Get(ctx context.Context, id int64, requesterID int64, privileged bool) (*internship.Internship, error) {
	in, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !privileged && in.CorporateID != requesterID && in.Status != internship.StatusApproved && in.Status != internship.StatusClosed {
		return nil, xerrors.ErrNotFound
	}
	return in, nil
}

// Update edits a posting. Only the owner may edit, and only while the
// posting is still editable (DRAFT or PENDING).
func (s *InternshipService) Update(ctx context.Context, id, corporateID int64, req *internship.UpdateRequest) (*internship.Internship, error) {
	in, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CorporateID != corporateID {
		return nil, xerrors.ErrForbidden
	}
	if in.Status != internship.StatusDraft && in.Status != internship.StatusPending {
		return nil, xerrors.ErrConflict
	}

	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Department != nil {
		in.Department = *req.Department
	}
	if req.Location != nil {
		in.Location = *req.Location
	}
	if req.LocationType != nil {
		in.LocationType = internship.LocationType(*req.LocationType)
	}
	if req.Stipend != nil {
		in.Stipend = *req.Stipend
	}
	if req.DurationWeeks != nil {
		in.DurationWeeks = *req.DurationWeeks
	}
	if req.Skills != nil {
		in.Skills = pq.StringArray(req.Skills)
	}

	if err := s.repo.Update(ctx, in); err != nil {
		return nil, fmt.Errorf("failed to update internship: %w", err)
	}
	return in, nil
}

// Submit moves a DRAFT posting into review.
func (s *InternshipService) Submit(ctx context.Context, id, corporateID int64) (*internship.Internship, error) {
	return s.transition(ctx, id, internship.StatusPending, "", corporateID, func(in *internship.Internship) error {
		if in.CorporateID != corporateID {
			return xerrors.ErrForbidden
		}
		return nil
	})
}

// Approve publishes a PENDING posting and notifies the recruiter.
func (s *InternshipService) Approve(ctx context.Context, id, decidedBy int64, req *internship.DecisionRequest) (*internship.Internship, error) {
	in, err := s.transition(ctx, id, internship.StatusApproved, req.Remarks, decidedBy, nil)
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, in.CorporateID, notif.TypeSuccess, "internships",
		"Posting approved",
		fmt.Sprintf("Your internship %q has been approved and is now visible to students.", in.Title))
	return in, nil
}

// Reject declines a PENDING posting and notifies the recruiter with the
// remarks.
func (s *InternshipService) Reject(ctx context.Context, id, decidedBy int64, req *internship.DecisionRequest) (*internship.Internship, error) {
	in, err := s.transition(ctx, id, internship.StatusRejected, req.Remarks, decidedBy, nil)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Your internship %q was not approved.", in.Title)
	if req.Remarks != "" {
		msg = fmt.Sprintf("%s Remarks: %s", msg, req.Remarks)
	}
	s.notifications.Notify(ctx, in.CorporateID, notif.TypeError, "internships", "Posting rejected", msg)
	return in, nil
}

// Close retires an APPROVED posting from the student listing.
func (s *InternshipService) Close(ctx context.Context, id, actorID int64) (*internship.Internship, error) {
	return s.transition(ctx, id, internship.StatusClosed, "", actorID, nil)
}

func (s *InternshipService) transition(
	ctx context.Context,
	id int64,
	to internship.Status,
	remarks string,
	actorID int64,
	check func(*internship.Internship) error,
) (*internship.Internship, error) {
	in, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if check != nil {
		if err := check(in); err != nil {
			return nil, err
		}
	}
	if !internship.CanTransition(in.Status, to) {
		return nil, fmt.Errorf("%w: cannot move posting from %s to %s", xerrors.ErrConflict, in.Status, to)
	}

	if err := s.repo.UpdateStatus(ctx, id, to, remarks, actorID); err != nil {
		return nil, err
	}

	s.logger.Info("internship status changed",
		zap.Int64("internship_id", id),
		zap.String("from", string(in.Status)),
		zap.String("to", string(to)),
		zap.Int64("actor_id", actorID),
	)

	in.Status = to
	if remarks != "" {
		in.Remarks = sql.NullString{String: remarks, Valid: true}
	}
	return in, nil
}

// List applies filters with pagination. Unprivileged callers are pinned to
// APPROVED regardless of the filter they sent.
func (s *InternshipService) List(ctx context.Context, filters *internship.ListFilters, privileged bool) (*internship.ListResponse, error) {
	if !privileged {
		filters.Status = string(internship.StatusApproved)
	}

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

	return &internship.ListResponse{
		Internships: items,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// ListMine returns the recruiter's own postings in every status.
func (s *InternshipService) ListMine(ctx context.Context, corporateID int64, filters *internship.ListFilters) (*internship.ListResponse, error) {
	filters.CorporateID = corporateID
	return s.List(ctx, filters, true)
}

func (s *InternshipService) Stats(ctx context.Context) (*internship.Stats, error) {
	return s.repo.Stats(ctx)
}
