// internal/handlers/closure/closure_handler.go
package closure

import (
	"net/http"
	"strconv"

	"ims-service/internal/domain/closure"
	"ims-service/internal/middleware"
	"ims-service/internal/pkg/response"
	service "ims-service/internal/service/closure"

	"github.com/gin-gonic/gin"
)

type ClosureHandler struct {
	closureService *service.ClosureService
}

func NewClosureHandler(closureService *service.ClosureService) *ClosureHandler {
	return &ClosureHandler{closureService: closureService}
}

// Submit files the student's final report.
func (h *ClosureHandler) Submit(c *gin.Context) {
	var req closure.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid closure submission", err)
		return
	}

	result, err := h.closureService.Submit(c.Request.Context(), middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to submit closure")
		return
	}

	response.Success(c, http.StatusCreated, "closure submitted", result)
}

// Get returns one closure.
func (h *ClosureHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.closureService.Get(c.Request.Context(), id, middleware.MustGetUserID(c), middleware.IsStaff(c))
	if err != nil {
		response.FromError(c, err, "closure not found")
		return
	}

	response.Success(c, http.StatusOK, "closure retrieved", result)
}

// ListPendingEvaluation lists closures awaiting guide evaluation.
func (h *ClosureHandler) ListPendingEvaluation(c *gin.Context) {
	result, err := h.closureService.ListPendingEvaluation(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "failed to list closures")
		return
	}

	response.Success(c, http.StatusOK, "closures retrieved", gin.H{
		"closures": result,
		"count":    len(result),
	})
}

// ListPendingCredits lists evaluated closures awaiting credit award.
func (h *ClosureHandler) ListPendingCredits(c *gin.Context) {
	result, err := h.closureService.ListPendingCredits(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "failed to list closures")
		return
	}

	response.Success(c, http.StatusOK, "closures retrieved", gin.H{
		"closures": result,
		"count":    len(result),
	})
}

// Evaluate records the guide's score and remarks.
func (h *ClosureHandler) Evaluate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req closure.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid evaluation", err)
		return
	}

	result, err := h.closureService.Evaluate(c.Request.Context(), id, middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to evaluate closure")
		return
	}

	response.Success(c, http.StatusOK, "closure evaluated", result)
}

// AwardCredits completes the internship lifecycle.
func (h *ClosureHandler) AwardCredits(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req closure.AwardCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid credit award", err)
		return
	}

	result, err := h.closureService.AwardCredits(c.Request.Context(), id, middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "failed to award credits")
		return
	}

	response.Success(c, http.StatusOK, "credits awarded", result)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid id", err)
		return 0, false
	}
	return id, true
}
