// internal/domain/notification/repository.go
package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id string) (*Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]Notification, error)
	Latest(ctx context.Context, userID int64, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id string, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id string, userID int64) error
	ClearAll(ctx context.Context, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
	Summary(ctx context.Context, userID int64) (*Summary, error)
}
