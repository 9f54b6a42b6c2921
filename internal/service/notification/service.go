// internal/service/notification/service.go
package notification

import (
	"context"
	"fmt"
	"time"

	"ims-service/internal/domain/notification"
	wstypes "ims-service/internal/domain/websocket"
	ws "ims-service/internal/websocket"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ToastWindow is how many of the newest notifications surface as popups;
// older ones only appear in the notification center.
const ToastWindow = 3

type NotificationService struct {
	repo   notification.Repository
	hub    *ws.Hub
	logger *zap.Logger
}

func NewNotificationService(repo notification.Repository, hub *ws.Hub, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, hub: hub, logger: logger}
}

// Add persists a notification for the user and pushes it over websocket.
// The ID is a ULID so insertion order survives serialization.
func (s *NotificationService) Add(ctx context.Context, userID int64, req *notification.AddRequest) (*notification.Notification, error) {
	typ := req.Type
	if typ == "" {
		typ = notification.TypeInfo
	}

	n := &notification.Notification{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Title:     req.Title,
		Message:   req.Message,
		Type:      typ,
		Category:  req.Category,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.push(ctx, n)
	return n, nil
}

// Notify is the internal producer API other services call on lifecycle
// events (application status changed, guide assigned, posting decided).
func (s *NotificationService) Notify(ctx context.Context, userID int64, typ notification.Type, category, title, message string) {
	_, err := s.Add(ctx, userID, &notification.AddRequest{
		Title:    title,
		Message:  message,
		Type:     typ,
		Category: category,
	})
	if err != nil {
		// Notification failures never fail the triggering operation.
		s.logger.Warn("failed to deliver notification",
			zap.Int64("user_id", userID),
			zap.String("category", category),
			zap.Error(err),
		)
	}
}

func (s *NotificationService) push(ctx context.Context, n *notification.Notification) {
	if s.hub == nil {
		return
	}

	s.hub.BroadcastNotification(n.UserID, &wstypes.NotificationData{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Category:  n.Category,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	})
	s.pushCount(ctx, n.UserID)
}

func (s *NotificationService) pushCount(ctx context.Context, userID int64) {
	if s.hub == nil {
		return
	}
	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to count unread notifications",
			zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	s.hub.BroadcastNotificationCount(userID, count)
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID int64) ([]notification.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Latest returns the toast window: unread-first, newest within, capped at
// ToastWindow.
func (s *NotificationService) Latest(ctx context.Context, userID int64) ([]notification.Notification, error) {
	return s.repo.Latest(ctx, userID, ToastWindow)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string, userID int64) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return err
	}
	s.pushCount(ctx, userID)
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.pushCount(ctx, userID)
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, id string, userID int64) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.pushCount(ctx, userID)
	return nil
}

func (s *NotificationService) ClearAll(ctx context.Context, userID int64) error {
	if err := s.repo.ClearAll(ctx, userID); err != nil {
		return err
	}
	s.pushCount(ctx, userID)
	return nil
}

func (s *NotificationService) Summary(ctx context.Context, userID int64) (*notification.Summary, error) {
	return s.repo.Summary(ctx, userID)
}
