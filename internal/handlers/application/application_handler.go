// internal/handlers/application/application_handler.go
package application

import (
	"net/http"
	"strconv"

	"ims-service/internal/domain/application"
	"ims-service/internal/middleware"
	"ims-service/internal/pkg/response"
	service "ims-service/internal/service/application"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Apply submits the student's application.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	studentID := middleware.MustGetUserID(c)

	var req application.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid application", err)
		return
	}

	result, err := h.applicationService.Apply(c.Request.Context(), studentID, &req)
	if err != nil {
		response.FromError(c, err, "failed to submit application")
		return
	}

	response.Success(c, http.StatusCreated, "application submitted", result)
}

// Get returns one application, owner/staff-gated.
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.applicationService.Get(c.Request.Context(), id, middleware.MustGetUserID(c), middleware.IsStaff(c))
	if err != nil {
		response.FromError(c, err, "application not found")
		return
	}

	response.Success(c, http.StatusOK, "application retrieved", result)
}

// ListMine returns the student's applications.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	result, err := h.applicationService.ListMine(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err, "failed to list applications")
		return
	}

	response.Success(c, http.StatusOK, "applications retrieved", gin.H{
		"applications": result,
		"count":        len(result),
	})
}

// List returns filtered applications for staff and recruiters.
func (h *ApplicationHandler) List(c *gin.Context) {
	var filters application.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.applicationService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list applications")
		return
	}

	response.Success(c, http.StatusOK, "applications retrieved", result)
}

// UpdateStatus advances an application through its lifecycle.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req application.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid status update", err)
		return
	}

	result, err := h.applicationService.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update application status")
		return
	}

	response.Success(c, http.StatusOK, "application status updated", result)
}

// AttachOfferLetter records the offer letter link.
func (h *ApplicationHandler) AttachOfferLetter(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req application.OfferLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid offer letter", err)
		return
	}

	result, err := h.applicationService.AttachOfferLetter(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to attach offer letter")
		return
	}

	response.Success(c, http.StatusOK, "offer letter attached", result)
}

// SubmitOfferLetter is the student-side upload; a shortlisted application
// moves to ACCEPTED.
func (h *ApplicationHandler) SubmitOfferLetter(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req application.OfferLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid offer letter", err)
		return
	}

	result, err := h.applicationService.SubmitOfferLetter(c.Request.Context(), id, middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to submit offer letter")
		return
	}

	response.Success(c, http.StatusOK, "offer letter submitted", result)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid id", err)
		return 0, false
	}
	return id, true
}
