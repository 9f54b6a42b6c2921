// internal/handlers/internship/internship_handler.go
package internship

import (
	"net/http"
	"strconv"

	companydom "ims-service/internal/domain/company"
	"ims-service/internal/domain/internship"
	"ims-service/internal/middleware"
	"ims-service/internal/pkg/response"
	companysvc "ims-service/internal/service/company"
	service "ims-service/internal/service/internship"

	"github.com/gin-gonic/gin"
)

type InternshipHandler struct {
	internshipService *service.InternshipService
	companyService    *companysvc.CompanyService
}

func NewInternshipHandler(internshipService *service.InternshipService, companyService *companysvc.CompanyService) *InternshipHandler {
	return &InternshipHandler{
		internshipService: internshipService,
		companyService:    companyService,
	}
}

// Create posts a new internship. The recruiter's company must already be
// approved.
func (h *InternshipHandler) Create(c *gin.Context) {
	recruiterID := middleware.MustGetUserID(c)

	var req internship.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid internship", err)
		return
	}

	company, err := h.companyService.GetMine(c.Request.Context(), recruiterID)
	if err != nil {
		response.FromError(c, err, "company profile required before posting")
		return
	}
	if company.Status != companydom.StatusApproved {
		response.Forbidden(c, "company must be approved before posting internships")
		return
	}

	result, err := h.internshipService.Create(c.Request.Context(), recruiterID, company.ID, &req)
	if err != nil {
		response.FromError(c, err, "failed to create internship")
		return
	}

	response.Success(c, http.StatusCreated, "internship created", result)
}

// Get returns one posting, visibility-filtered by role.
func (h *InternshipHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.internshipService.Get(c.Request.Context(), id, middleware.MustGetUserID(c), middleware.IsStaff(c))
	if err != nil {
		response.FromError(c, err, "internship not found")
		return
	}

	response.Success(c, http.StatusOK, "internship retrieved", result)
}

// List returns postings. Students see only APPROVED; staff see everything
// the filters match.
func (h *InternshipHandler) List(c *gin.Context) {
	var filters internship.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.internshipService.List(c.Request.Context(), &filters, middleware.IsStaff(c))
	if err != nil {
		response.FromError(c, err, "failed to list internships")
		return
	}

	response.Success(c, http.StatusOK, "internships retrieved", result)
}

// ListMine returns the recruiter's own postings in every status.
func (h *InternshipHandler) ListMine(c *gin.Context) {
	var filters internship.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.internshipService.ListMine(c.Request.Context(), middleware.MustGetUserID(c), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list internships")
		return
	}

	response.Success(c, http.StatusOK, "internships retrieved", result)
}

// Update edits an editable posting.
func (h *InternshipHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req internship.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid internship update", err)
		return
	}

	result, err := h.internshipService.Update(c.Request.Context(), id, middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to update internship")
		return
	}

	response.Success(c, http.StatusOK, "internship updated", result)
}

// Submit moves a draft into review.
func (h *InternshipHandler) Submit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.internshipService.Submit(c.Request.Context(), id, middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err, "failed to submit internship")
		return
	}

	response.Success(c, http.StatusOK, "internship submitted for review", result)
}

// Approve publishes a pending posting.
func (h *InternshipHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req internship.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.ValidationError(c, "invalid decision", err)
		return
	}

	result, err := h.internshipService.Approve(c.Request.Context(), id, middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to approve internship")
		return
	}

	response.Success(c, http.StatusOK, "internship approved", result)
}

// Reject declines a pending posting.
func (h *InternshipHandler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req internship.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.ValidationError(c, "invalid decision", err)
		return
	}

	result, err := h.internshipService.Reject(c.Request.Context(), id, middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to reject internship")
		return
	}

	response.Success(c, http.StatusOK, "internship rejected", result)
}

// Close retires a published posting.
func (h *InternshipHandler) Close(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.internshipService.Close(c.Request.Context(), id, middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err, "failed to close internship")
		return
	}

	response.Success(c, http.StatusOK, "internship closed", result)
}

// Stats summarizes posting counts per status for staff dashboards.
func (h *InternshipHandler) Stats(c *gin.Context) {
	result, err := h.internshipService.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "failed to compute stats")
		return
	}

	response.Success(c, http.StatusOK, "stats retrieved", result)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid id", err)
		return 0, false
	}
	return id, true
}
