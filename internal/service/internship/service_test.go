package internship

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dominternship "ims-service/internal/domain/internship"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/pkg/session"
	"ims-service/internal/repository/mock"
	notifsvc "ims-service/internal/service/notification"
	"ims-service/internal/storage"
	ws "ims-service/internal/websocket"
)

func newInternshipService(t *testing.T) *InternshipService {
	t.Helper()
	store := storage.NewMemoryStore()
	hub := ws.NewHub(nil, session.NewManager(session.NewMemoryStore()), zap.NewNop())
	notifications := notifsvc.NewNotificationService(mock.NewNotificationRepository(store, 0), hub, zap.NewNop())
	return NewInternshipService(mock.NewInternshipRepository(store, 0), notifications, zap.NewNop())
}

func createReq() *dominternship.CreateRequest {
	return &dominternship.CreateRequest{
		Title:         "Backend Intern",
		Description:   "Work on the platform API",
		Department:    "CSE",
		Location:      "Bangalore",
		Stipend:       15000,
		DurationWeeks: 12,
		Skills:        []string{"go", "sql"},
	}
}

func TestCreateDraftAndSubmit(t *testing.T) {
	svc := newInternshipService(t)
	ctx := context.Background()

	in, err := svc.Create(ctx, 100, 1, createReq())
	require.NoError(t, err)
	assert.Equal(t, dominternship.StatusDraft, in.Status)
	assert.Equal(t, dominternship.LocationOnsite, in.LocationType)

	submitted, err := svc.Submit(ctx, in.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, dominternship.StatusPending, submitted.Status)

	// Submitting twice is a lifecycle conflict.
	_, err = svc.Submit(ctx, in.ID, 100)
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestCreateWithImmediateSubmit(t *testing.T) {
	svc := newInternshipService(t)
	req := createReq()
	req.Submit = true

	in, err := svc.Create(context.Background(), 100, 1, req)
	require.NoError(t, err)
	assert.Equal(t, dominternship.StatusPending, in.Status)
}

func TestApprovalLifecycle(t *testing.T) {
	svc := newInternshipService(t)
	ctx := context.Background()

	req := createReq()
	req.Submit = true
	in, err := svc.Create(ctx, 100, 1, req)
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, in.ID, 7, &dominternship.DecisionRequest{Remarks: "looks good"})
	require.NoError(t, err)
	assert.Equal(t, dominternship.StatusApproved, approved.Status)
	assert.Equal(t, int64(7), approved.DecidedBy.Int64)
	assert.Equal(t, "looks good", approved.Remarks.String)

	// An approved posting cannot be rejected afterwards.
	_, err = svc.Reject(ctx, in.ID, 7, &dominternship.DecisionRequest{})
	assert.ErrorIs(t, err, xerrors.ErrConflict)

	closed, err := svc.Close(ctx, in.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, dominternship.StatusClosed, closed.Status)
}

func TestRejectFromPendingOnly(t *testing.T) {
	svc := newInternshipService(t)
	ctx := context.Background()

	in, err := svc.Create(ctx, 100, 1, createReq())
	require.NoError(t, err)

	// Drafts are not in the review queue.
	_, err = svc.Reject(ctx, in.ID, 7, &dominternship.DecisionRequest{Remarks: "incomplete"})
	assert.ErrorIs(t, err, xerrors.ErrConflict)

	_, err = svc.Submit(ctx, in.ID, 100)
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, in.ID, 7, &dominternship.DecisionRequest{Remarks: "incomplete"})
	require.NoError(t, err)
	assert.Equal(t, dominternship.StatusRejected, rejected.Status)
}

func TestUpdateOwnershipAndStatus(t *testing.T) {
	svc := newInternshipService(t)
	ctx := context.Background()

	in, err := svc.Create(ctx, 100, 1, createReq())
	require.NoError(t, err)

	title := "Platform Intern"
	_, err = svc.Update(ctx, in.ID, 999, &dominternship.UpdateRequest{Title: &title})
	assert.ErrorIs(t, err, xerrors.ErrForbidden)

	updated, err := svc.Update(ctx, in.ID, 100, &dominternship.UpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Platform Intern", updated.Title)

	// Once approved, edits are locked out.
	_, err = svc.Submit(ctx, in.ID, 100)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, in.ID, 7, &dominternship.DecisionRequest{})
	require.NoError(t, err)
	_, err = svc.Update(ctx, in.ID, 100, &dominternship.UpdateRequest{Title: &title})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestGetHidesUnapprovedFromOthers(t *testing.T) {
	svc := newInternshipService(t)
	ctx := context.Background()

	in, err := svc.Create(ctx, 100, 1, createReq())
	require.NoError(t, err)

	// Owner and staff can see the draft; a student cannot.
	_, err = svc.Get(ctx, in.ID, 100, false)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, in.ID, 55, true)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, in.ID, 55, false)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestListPinsApprovedForUnprivileged(t *testing.T) {
	svc := newInternshipService(t)
	ctx := context.Background()

	req := createReq()
	req.Submit = true
	pending, err := svc.Create(ctx, 100, 1, req)
	require.NoError(t, err)

	req2 := createReq()
	req2.Title = "Data Intern"
	req2.Submit = true
	in2, err := svc.Create(ctx, 100, 1, req2)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, in2.ID, 7, &dominternship.DecisionRequest{})
	require.NoError(t, err)

	// Students see only the approved posting even when asking for PENDING.
	resp, err := svc.List(ctx, &dominternship.ListFilters{Status: string(dominternship.StatusPending)}, false)
	require.NoError(t, err)
	require.Len(t, resp.Internships, 1)
	assert.Equal(t, in2.ID, resp.Internships[0].ID)

	// Staff see the review queue.
	resp, err = svc.List(ctx, &dominternship.ListFilters{Status: string(dominternship.StatusPending)}, true)
	require.NoError(t, err)
	require.Len(t, resp.Internships, 1)
	assert.Equal(t, pending.ID, resp.Internships[0].ID)
}

func TestStats(t *testing.T) {
	svc := newInternshipService(t)
	ctx := context.Background()

	req := createReq()
	req.Submit = true
	in, err := svc.Create(ctx, 100, 1, req)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, in.ID, 7, &dominternship.DecisionRequest{})
	require.NoError(t, err)

	_, err = svc.Create(ctx, 100, 1, createReq())
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Approved)
}
