// internal/repository/mock/notification_repo.go
package mock

import (
	"context"
	"sort"
	"time"

	"ims-service/internal/domain/notification"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/storage"
)

const notificationsKey = "notifications"

type NotificationRepository struct {
	col *collection[notification.Notification]
}

func NewNotificationRepository(store storage.Store, latency time.Duration) *NotificationRepository {
	return &NotificationRepository{col: newCollection[notification.Notification](store, notificationsKey, latency)}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	return r.col.save(ctx, append(items, *n))
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			n := items[i]
			return &n, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]notification.Notification, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(items, userID), nil
}

// Latest is the toast window: unread entries rank before read ones so a
// fresh read never hides an older unread notification.
func (r *NotificationRepository) Latest(ctx context.Context, userID int64, limit int) ([]notification.Notification, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}

	out := newestFirst(items, userID)
	sort.SliceStable(out, func(i, j int) bool {
		return !out[i].Read && out[j].Read
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newestFirst(items []notification.Notification, userID int64) []notification.Notification {
	out := []notification.Notification{}
	for _, n := range items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	// ULIDs are lexically time-ordered; break created-at ties with the ID
	// so the order is stable within one millisecond.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string, userID int64) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id && items[i].UserID == userID {
			items[i].Read = true
			return r.col.save(ctx, items)
		}
	}
	return xerrors.ErrNotFound
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].UserID == userID {
			items[i].Read = true
		}
	}
	return r.col.save(ctx, items)
}

func (r *NotificationRepository) Delete(ctx context.Context, id string, userID int64) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id && items[i].UserID == userID {
			return r.col.save(ctx, append(items[:i], items[i+1:]...))
		}
	}
	return xerrors.ErrNotFound
}

func (r *NotificationRepository) ClearAll(ctx context.Context, userID int64) error {
	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, n := range items {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	return r.col.save(ctx, kept)
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	s, err := r.Summary(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.TotalUnread, nil
}

func (r *NotificationRepository) Summary(ctx context.Context, userID int64) (*notification.Summary, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}

	var s notification.Summary
	for _, n := range items {
		if n.UserID != userID {
			continue
		}
		s.Total++
		if n.Read {
			s.TotalRead++
		} else {
			s.TotalUnread++
		}
	}
	return &s, nil
}
