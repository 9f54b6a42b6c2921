// internal/handlers/company/company_handler.go
package company

import (
	"context"
	"net/http"
	"strconv"

	"ims-service/internal/domain/company"
	"ims-service/internal/middleware"
	"ims-service/internal/pkg/response"
	service "ims-service/internal/service/company"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyService *service.CompanyService
}

func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Create registers the recruiter's company profile.
func (h *CompanyHandler) Create(c *gin.Context) {
	var req company.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid company", err)
		return
	}

	result, err := h.companyService.Create(c.Request.Context(), middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to register company")
		return
	}

	response.Success(c, http.StatusCreated, "company registered", result)
}

// Get returns one company.
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.companyService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "company not found")
		return
	}

	response.Success(c, http.StatusOK, "company retrieved", result)
}

// GetMine returns the recruiter's own company.
func (h *CompanyHandler) GetMine(c *gin.Context) {
	result, err := h.companyService.GetMine(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err, "company not found")
		return
	}

	response.Success(c, http.StatusOK, "company retrieved", result)
}

// List returns filtered companies with trust scores.
func (h *CompanyHandler) List(c *gin.Context) {
	var filters company.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.companyService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list companies")
		return
	}

	response.Success(c, http.StatusOK, "companies retrieved", result)
}

// Update edits the recruiter's own profile.
func (h *CompanyHandler) Update(c *gin.Context) {
	var req company.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid company update", err)
		return
	}

	result, err := h.companyService.Update(c.Request.Context(), middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to update company")
		return
	}

	response.Success(c, http.StatusOK, "company updated", result)
}

// Approve admits a pending company.
func (h *CompanyHandler) Approve(c *gin.Context) {
	h.decide(c, h.companyService.Approve, "company approved")
}

// Reject declines a pending company.
func (h *CompanyHandler) Reject(c *gin.Context) {
	h.decide(c, h.companyService.Reject, "company rejected")
}

// Ban removes a company from the platform.
func (h *CompanyHandler) Ban(c *gin.Context) {
	h.decide(c, h.companyService.Ban, "company banned")
}

// Unban lifts a ban and restores the company to approved.
func (h *CompanyHandler) Unban(c *gin.Context) {
	h.decide(c, h.companyService.Unban, "company unbanned")
}

func (h *CompanyHandler) decide(
	c *gin.Context,
	fn func(ctx context.Context, id, decidedBy int64, req *company.DecisionRequest) (*company.Company, error),
	message string,
) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req company.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.ValidationError(c, "invalid decision", err)
		return
	}

	result, err := fn(c.Request.Context(), id, middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to update company status")
		return
	}

	response.Success(c, http.StatusOK, message, result)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid id", err)
		return 0, false
	}
	return id, true
}
