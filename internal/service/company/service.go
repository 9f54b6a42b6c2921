// internal/service/company/service.go
package company

import (
	"context"
	"database/sql"
	"fmt"

	"ims-service/internal/domain/company"
	notif "ims-service/internal/domain/notification"
	xerrors "ims-service/internal/pkg/errors"
	notifsvc "ims-service/internal/service/notification"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type CompanyService struct {
	repo          company.Repository
	notifications *notifsvc.NotificationService
	logger        *zap.Logger
}

func NewCompanyService(repo company.Repository, notifications *notifsvc.NotificationService, logger *zap.Logger) *CompanyService {
	return &CompanyService{repo: repo, notifications: notifications, logger: logger}
}

// Create registers the recruiter's company profile, starting in PENDING
// until placement approves it. One company per recruiter account.
func (s *CompanyService) Create(ctx context.Context, recruiterID int64, req *company.CreateRequest) (*company.Company, error) {
	c := &company.Company{
		RecruiterUserID: recruiterID,
		Name:            req.Name,
		Industry:        sql.NullString{String: req.Industry, Valid: req.Industry != ""},
		Website:         sql.NullString{String: req.Website, Valid: req.Website != ""},
		Description:     sql.NullString{String: req.Description, Valid: req.Description != ""},
		HRName:          sql.NullString{String: req.HRName, Valid: req.HRName != ""},
		HREmail:         sql.NullString{String: req.HREmail, Valid: req.HREmail != ""},
		HRPhone:         sql.NullString{String: req.HRPhone, Valid: req.HRPhone != ""},
		Locations:       pq.StringArray(req.Locations),
		Status:          company.StatusPending,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("company registered",
		zap.Int64("company_id", c.ID),
		zap.Int64("recruiter_id", recruiterID),
	)

	c.TrustScore = c.ComputeTrustScore()
	return c, nil
}

// Get returns a company with its trust score computed.
func (s *CompanyService) Get(ctx context.Context, id int64) (*company.Company, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.TrustScore = c.ComputeTrustScore()
	return c, nil
}

// GetMine resolves the recruiter's own company profile.
func (s *CompanyService) GetMine(ctx context.Context, recruiterID int64) (*company.Company, error) {
	c, err := s.repo.FindByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	c.TrustScore = c.ComputeTrustScore()
	return c, nil
}

// List applies filters with pagination; trust scores are computed per row.
func (s *CompanyService) List(ctx context.Context, filters *company.ListFilters) (*company.ListResponse, error) {
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].TrustScore = items[i].ComputeTrustScore()
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &company.ListResponse{
		Companies:  items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// Update edits the recruiter's own profile. A banned company cannot edit
// its way back to visibility.
func (s *CompanyService) Update(ctx context.Context, recruiterID int64, req *company.UpdateRequest) (*company.Company, error) {
	c, err := s.repo.FindByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	if c.Status == company.StatusBanned {
		return nil, xerrors.ErrForbidden
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Industry != nil {
		c.Industry = sql.NullString{String: *req.Industry, Valid: *req.Industry != ""}
	}
	if req.Website != nil {
		c.Website = sql.NullString{String: *req.Website, Valid: *req.Website != ""}
	}
	if req.Description != nil {
		c.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	if req.HRName != nil {
		c.HRName = sql.NullString{String: *req.HRName, Valid: *req.HRName != ""}
	}
	if req.HREmail != nil {
		c.HREmail = sql.NullString{String: *req.HREmail, Valid: *req.HREmail != ""}
	}
	if req.HRPhone != nil {
		c.HRPhone = sql.NullString{String: *req.HRPhone, Valid: *req.HRPhone != ""}
	}
	if req.Locations != nil {
		c.Locations = pq.StringArray(req.Locations)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	c.TrustScore = c.ComputeTrustScore()
	return c, nil
}

// Approve admits a pending company and notifies the recruiter.
func (s *CompanyService) Approve(ctx context.Context, id, decidedBy int64, req *company.DecisionRequest) (*company.Company, error) {
	return s.decide(ctx, id, company.StatusApproved, decidedBy, req.Reason,
		notif.TypeSuccess, "Company approved",
		"Your company has been approved. You can now post internships.")
}

// Reject declines a pending company.
func (s *CompanyService) Reject(ctx context.Context, id, decidedBy int64, req *company.DecisionRequest) (*company.Company, error) {
	msg := "Your company registration was not approved."
	if req.Reason != "" {
		msg = fmt.Sprintf("%s Reason: %s", msg, req.Reason)
	}
	return s.decide(ctx, id, company.StatusRejected, decidedBy, req.Reason,
		notif.TypeError, "Company rejected", msg)
}

// Ban removes a company from the platform regardless of current status.
func (s *CompanyService) Ban(ctx context.Context, id, decidedBy int64, req *company.DecisionRequest) (*company.Company, error) {
	msg := "Your company has been banned from the platform."
	if req.Reason != "" {
		msg = fmt.Sprintf("%s Reason: %s", msg, req.Reason)
	}
	return s.decide(ctx, id, company.StatusBanned, decidedBy, req.Reason,
		notif.TypeError, "Company banned", msg)
}

// Unban lifts a ban, restoring the company to approved.
func (s *CompanyService) Unban(ctx context.Context, id, decidedBy int64, req *company.DecisionRequest) (*company.Company, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != company.StatusBanned {
		return nil, fmt.Errorf("%w: company is not banned", xerrors.ErrConflict)
	}

	if err := s.repo.UpdateStatus(ctx, id, company.StatusApproved, req.Reason, decidedBy); err != nil {
		return nil, err
	}

	s.logger.Info("company status changed",
		zap.Int64("company_id", id),
		zap.String("from", string(company.StatusBanned)),
		zap.String("to", string(company.StatusApproved)),
		zap.Int64("decided_by", decidedBy),
	)

	s.notifications.Notify(ctx, c.RecruiterUserID, notif.TypeSuccess, "companies",
		"Company reinstated", "Your company ban has been lifted.")

	c.Status = company.StatusApproved
	c.StatusReason = sql.NullString{String: req.Reason, Valid: req.Reason != ""}
	c.TrustScore = c.ComputeTrustScore()
	return c, nil
}

func (s *CompanyService) decide(
	ctx context.Context,
	id int64,
	to company.Status,
	decidedBy int64,
	reason string,
	typ notif.Type,
	title, message string,
) (*company.Company, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch to {
	case company.StatusApproved, company.StatusRejected:
		if c.Status != company.StatusPending {
			return nil, fmt.Errorf("%w: company is not awaiting review", xerrors.ErrConflict)
		}
	case company.StatusBanned:
		if c.Status == company.StatusBanned {
			return nil, fmt.Errorf("%w: company is already banned", xerrors.ErrConflict)
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, to, reason, decidedBy); err != nil {
		return nil, err
	}

	s.logger.Info("company status changed",
		zap.Int64("company_id", id),
		zap.String("from", string(c.Status)),
		zap.String("to", string(to)),
		zap.Int64("decided_by", decidedBy),
	)

	s.notifications.Notify(ctx, c.RecruiterUserID, typ, "companies", title, message)

	c.Status = to
	c.StatusReason = sql.NullString{String: reason, Valid: reason != ""}
	c.DecidedBy = sql.NullInt64{Int64: decidedBy, Valid: true}
	c.TrustScore = c.ComputeTrustScore()
	return c, nil
}
