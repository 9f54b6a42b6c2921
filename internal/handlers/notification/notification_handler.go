// internal/handlers/notification/notification_handler.go
package notification

import (
	"net/http"

	"ims-service/internal/domain/notification"
	"ims-service/internal/middleware"
	"ims-service/internal/pkg/response"
	service "ims-service/internal/service/notification"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List retrieves all notifications for the current user, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.notificationService.List(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err, "failed to get notifications")
		return
	}

	response.Success(c, http.StatusOK, "notifications retrieved", gin.H{
		"notifications": result,
		"count":         len(result),
	})
}

// Latest retrieves the toast window.
func (h *NotificationHandler) Latest(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.notificationService.Latest(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err, "failed to get notifications")
		return
	}

	response.Success(c, http.StatusOK, "notifications retrieved", gin.H{
		"notifications": result,
		"count":         len(result),
	})
}

// Add creates a notification for the current user. Mostly used by the
// offline demo frontends; services create notifications internally.
func (h *NotificationHandler) Add(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req notification.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid notification", err)
		return
	}

	result, err := h.notificationService.Add(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, err, "failed to create notification")
		return
	}

	response.Success(c, http.StatusCreated, "notification created", result)
}

// MarkRead marks one notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	id := c.Param("id")

	if err := h.notificationService.MarkRead(c.Request.Context(), id, userID); err != nil {
		response.FromError(c, err, "failed to mark notification read")
		return
	}

	summary, _ := h.notificationService.Summary(c.Request.Context(), userID)
	response.Success(c, http.StatusOK, "notification marked as read", summary)
}

// MarkAllRead marks everything read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.FromError(c, err, "failed to mark notifications read")
		return
	}

	response.Success(c, http.StatusOK, "all notifications marked as read", nil)
}

// Delete removes one notification.
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	id := c.Param("id")

	if err := h.notificationService.Delete(c.Request.Context(), id, userID); err != nil {
		response.FromError(c, err, "failed to delete notification")
		return
	}

	response.Success(c, http.StatusOK, "notification deleted", nil)
}

// ClearAll removes every notification for the user.
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.notificationService.ClearAll(c.Request.Context(), userID); err != nil {
		response.FromError(c, err, "failed to clear notifications")
		return
	}

	response.Success(c, http.StatusOK, "notifications cleared", nil)
}

// Summary returns read/unread counts.
func (h *NotificationHandler) Summary(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.notificationService.Summary(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err, "failed to summarize notifications")
		return
	}

	response.Success(c, http.StatusOK, "summary retrieved", result)
}
