package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domnotify "ims-service/internal/domain/notification"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/repository/mock"
	"ims-service/internal/storage"
)

func newNotificationService(t *testing.T) *NotificationService {
	t.Helper()
	repo := mock.NewNotificationRepository(storage.NewMemoryStore(), 0)
	// hub is optional; push is skipped when absent.
	return NewNotificationService(repo, nil, zap.NewNop())
}

func addN(t *testing.T, svc *NotificationService, userID int64, n int) []domnotify.Notification {
	t.Helper()
	out := make([]domnotify.Notification, 0, n)
	for i := 0; i < n; i++ {
		created, err := svc.Add(context.Background(), userID, &domnotify.AddRequest{
			Title:   fmt.Sprintf("event %d", i),
			Message: "something happened",
		})
		require.NoError(t, err)
		out = append(out, *created)
	}
	return out
}

func TestAddDefaultsToInfo(t *testing.T) {
	svc := newNotificationService(t)

	n, err := svc.Add(context.Background(), 1, &domnotify.AddRequest{Title: "hi", Message: "there"})
	require.NoError(t, err)
	assert.Equal(t, domnotify.TypeInfo, n.Type)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)
}

func TestLatestIsCappedToToastWindow(t *testing.T) {
	svc := newNotificationService(t)
	added := addN(t, svc, 1, ToastWindow+2)

	latest, err := svc.Latest(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, latest, ToastWindow)

	// Newest first; the oldest additions fall out of the window.
	assert.Equal(t, added[len(added)-1].ID, latest[0].ID)
	for _, n := range latest {
		assert.NotEqual(t, added[0].ID, n.ID)
	}
}

func TestLatestRanksUnreadFirst(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()
	added := addN(t, svc, 1, ToastWindow+1)

	// Reading the newest entry must not let it crowd an older unread one
	// out of the toast window.
	newest := added[len(added)-1]
	require.NoError(t, svc.MarkRead(ctx, newest.ID, 1))

	latest, err := svc.Latest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, ToastWindow)
	for _, n := range latest {
		assert.False(t, n.Read)
		assert.NotEqual(t, newest.ID, n.ID)
	}
	assert.Equal(t, added[len(added)-2].ID, latest[0].ID)
}

func TestListIsNewestFirstAndPerUser(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()
	addN(t, svc, 1, 3)
	addN(t, svc, 2, 1)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt))
	}

	other, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestMarkReadAndSummary(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()
	added := addN(t, svc, 1, 3)

	require.NoError(t, svc.MarkRead(ctx, added[0].ID, 1))

	sum, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.TotalRead)
	assert.Equal(t, 2, sum.TotalUnread)

	require.NoError(t, svc.MarkAllRead(ctx, 1))
	sum, err = svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.TotalUnread)
}

func TestMarkReadIsOwnerScoped(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()
	added := addN(t, svc, 1, 1)

	// Another user cannot touch someone else's notification.
	err := svc.MarkRead(ctx, added[0].ID, 2)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	err = svc.Delete(ctx, added[0].ID, 2)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestDeleteAndClearAll(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()
	added := addN(t, svc, 1, 3)
	addN(t, svc, 2, 1)

	require.NoError(t, svc.Delete(ctx, added[1].ID, 1))
	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.ClearAll(ctx, 1))
	list, err = svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Clearing one inbox leaves others alone.
	other, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestNotifyNeverFails(t *testing.T) {
	svc := newNotificationService(t)

	// Producer API swallows repository errors; it must not panic either.
	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), 1, domnotify.TypeSuccess, "applications", "Accepted", "You got it")
	})

	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domnotify.TypeSuccess, list[0].Type)
}
