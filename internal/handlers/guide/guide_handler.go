// internal/handlers/guide/guide_handler.go
package guide

import (
	"net/http"
	"strconv"

	"ims-service/internal/domain/guide"
	"ims-service/internal/middleware"
	"ims-service/internal/pkg/response"
	service "ims-service/internal/service/guide"

	"github.com/gin-gonic/gin"
)

type GuideHandler struct {
	guideService *service.GuideService
}

func NewGuideHandler(guideService *service.GuideService) *GuideHandler {
	return &GuideHandler{guideService: guideService}
}

// Assign binds a faculty guide to an active internship.
func (h *GuideHandler) Assign(c *gin.Context) {
	var req guide.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid assignment", err)
		return
	}

	result, err := h.guideService.Assign(c.Request.Context(), middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to assign guide")
		return
	}

	response.Success(c, http.StatusCreated, "guide assigned", result)
}

// Get returns one assignment with feedback.
func (h *GuideHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.guideService.Get(c.Request.Context(), id, middleware.MustGetUserID(c), middleware.IsStaff(c))
	if err != nil {
		response.FromError(c, err, "assignment not found")
		return
	}

	response.Success(c, http.StatusOK, "assignment retrieved", result)
}

// ListMine lists assignments for the caller: students see their
// internships, faculty see their mentees.
func (h *GuideHandler) ListMine(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var (
		result []guide.Assignment
		err    error
	)
	if middleware.HasRole(c, "FACULTY") {
		result, err = h.guideService.ListForGuide(c.Request.Context(), userID)
	} else {
		result, err = h.guideService.ListForStudent(c.Request.Context(), userID)
	}
	if err != nil {
		response.FromError(c, err, "failed to list assignments")
		return
	}

	response.Success(c, http.StatusOK, "assignments retrieved", gin.H{
		"assignments": result,
		"count":       len(result),
	})
}

// AddFeedback appends a guide comment.
func (h *GuideHandler) AddFeedback(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req guide.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid feedback", err)
		return
	}

	result, err := h.guideService.AddFeedback(c.Request.Context(), id, middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to add feedback")
		return
	}

	response.Success(c, http.StatusCreated, "feedback added", result)
}

// SaveWeeklyLog creates or updates a weekly progress log.
func (h *GuideHandler) SaveWeeklyLog(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req guide.WeeklyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid weekly log", err)
		return
	}

	result, err := h.guideService.SaveWeeklyLog(c.Request.Context(), id, middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to save weekly log")
		return
	}

	response.Success(c, http.StatusOK, "weekly log saved", result)
}

// ListWeeklyLogs returns all logs on an assignment.
func (h *GuideHandler) ListWeeklyLogs(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.guideService.ListWeeklyLogs(c.Request.Context(), id, middleware.MustGetUserID(c), middleware.IsStaff(c))
	if err != nil {
		response.FromError(c, err, "failed to list weekly logs")
		return
	}

	response.Success(c, http.StatusOK, "weekly logs retrieved", gin.H{
		"logs":  result,
		"count": len(result),
	})
}

// ReviewWeeklyLog approves or rejects a submitted log.
func (h *GuideHandler) ReviewWeeklyLog(c *gin.Context) {
	id, ok := pathID(c, "log_id")
	if !ok {
		return
	}

	var req guide.LogReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid review", err)
		return
	}

	result, err := h.guideService.ReviewWeeklyLog(c.Request.Context(), id, middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to review weekly log")
		return
	}

	response.Success(c, http.StatusOK, "weekly log reviewed", result)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid id", err)
		return 0, false
	}
	return id, true
}
