package closure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domapp "ims-service/internal/domain/application"
	domclosure "ims-service/internal/domain/closure"
	domguide "ims-service/internal/domain/guide"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/pkg/session"
	"ims-service/internal/repository/mock"
	notifsvc "ims-service/internal/service/notification"
	"ims-service/internal/storage"
	ws "ims-service/internal/websocket"
)

type closureFixture struct {
	svc          *ClosureService
	assignments  domguide.Repository
	applications domapp.Repository
}

func newClosureFixture(t *testing.T) *closureFixture {
	t.Helper()
	store := storage.NewMemoryStore()
	hub := ws.NewHub(nil, session.NewManager(session.NewMemoryStore()), zap.NewNop())
	notifications := notifsvc.NewNotificationService(mock.NewNotificationRepository(store, 0), hub, zap.NewNop())

	assignments := mock.NewGuideRepository(store, 0)
	applications := mock.NewApplicationRepository(store, 0)
	svc := NewClosureService(mock.NewClosureRepository(store, 0), assignments, applications, notifications, zap.NewNop())
	return &closureFixture{svc: svc, assignments: assignments, applications: applications}
}

// seedAssignment provisions an active application bound to guide 2, owned
// by student 5.
func (f *closureFixture) seedAssignment(t *testing.T) *domguide.Assignment {
	t.Helper()
	ctx := context.Background()

	app := &domapp.Application{InternshipID: 1, StudentID: 5, Status: domapp.StatusActive, ResumeLink: "x"}
	require.NoError(t, f.applications.Create(ctx, app))

	a := &domguide.Assignment{
		ApplicationID: app.ID,
		StudentID:     5,
		GuideID:       2,
		Status:        domguide.StatusInProgress,
		AssignedBy:    9,
	}
	require.NoError(t, f.assignments.CreateAssignment(ctx, a))
	return a
}

func TestSubmitClosure(t *testing.T) {
	f := newClosureFixture(t)
	ctx := context.Background()
	a := f.seedAssignment(t)

	_, err := f.svc.Submit(ctx, 99, &domclosure.SubmitRequest{AssignmentID: a.ID, ReportLink: "r"})
	assert.ErrorIs(t, err, xerrors.ErrForbidden)

	c, err := f.svc.Submit(ctx, 5, &domclosure.SubmitRequest{AssignmentID: a.ID, ReportLink: "https://reports.example/final.pdf"})
	require.NoError(t, err)
	assert.Equal(t, domclosure.StatusPending, c.Status)

	got, err := f.assignments.FindAssignmentByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domguide.StatusClosureSubmitted, got.Status)

	// Resubmitting is a conflict.
	_, err = f.svc.Submit(ctx, 5, &domclosure.SubmitRequest{AssignmentID: a.ID, ReportLink: "r2"})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestEvaluate(t *testing.T) {
	f := newClosureFixture(t)
	ctx := context.Background()
	a := f.seedAssignment(t)

	c, err := f.svc.Submit(ctx, 5, &domclosure.SubmitRequest{AssignmentID: a.ID, ReportLink: "r"})
	require.NoError(t, err)

	// Only the assigned guide evaluates.
	_, err = f.svc.Evaluate(ctx, c.ID, 777, &domclosure.EvaluateRequest{Score: 80})
	assert.ErrorIs(t, err, xerrors.ErrForbidden)

	c, err = f.svc.Evaluate(ctx, c.ID, 2, &domclosure.EvaluateRequest{Score: 85, Remarks: "strong work"})
	require.NoError(t, err)
	assert.Equal(t, domclosure.StatusEvaluated, c.Status)
	assert.Equal(t, int64(85), c.Score.Int64)
	assert.Equal(t, int64(2), c.EvaluatedBy.Int64)

	// Re-evaluating is a conflict.
	_, err = f.svc.Evaluate(ctx, c.ID, 2, &domclosure.EvaluateRequest{Score: 90})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestAwardCreditsFinishesLifecycle(t *testing.T) {
	f := newClosureFixture(t)
	ctx := context.Background()
	a := f.seedAssignment(t)

	c, err := f.svc.Submit(ctx, 5, &domclosure.SubmitRequest{AssignmentID: a.ID, ReportLink: "r"})
	require.NoError(t, err)

	// Credits require an evaluation first.
	_, err = f.svc.AwardCredits(ctx, c.ID, 11, &domclosure.AwardCreditsRequest{Credits: 4})
	assert.ErrorIs(t, err, xerrors.ErrConflict)

	_, err = f.svc.Evaluate(ctx, c.ID, 2, &domclosure.EvaluateRequest{Score: 85})
	require.NoError(t, err)

	c, err = f.svc.AwardCredits(ctx, c.ID, 11, &domclosure.AwardCreditsRequest{Credits: 4})
	require.NoError(t, err)
	assert.Equal(t, domclosure.StatusCompleted, c.Status)
	assert.Equal(t, int64(4), c.Credits.Int64)
	assert.Equal(t, int64(11), c.AwardedBy.Int64)

	// Assignment completes and the application archives.
	gotA, err := f.assignments.FindAssignmentByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domguide.StatusCompleted, gotA.Status)

	gotApp, err := f.applications.FindByID(ctx, a.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, domapp.StatusArchived, gotApp.Status)
}

func TestPendingQueues(t *testing.T) {
	f := newClosureFixture(t)
	ctx := context.Background()
	a := f.seedAssignment(t)

	c, err := f.svc.Submit(ctx, 5, &domclosure.SubmitRequest{AssignmentID: a.ID, ReportLink: "r"})
	require.NoError(t, err)

	pending, err := f.svc.ListPendingEvaluation(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	credits, err := f.svc.ListPendingCredits(ctx)
	require.NoError(t, err)
	assert.Empty(t, credits)

	_, err = f.svc.Evaluate(ctx, c.ID, 2, &domclosure.EvaluateRequest{Score: 70})
	require.NoError(t, err)

	pending, err = f.svc.ListPendingEvaluation(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	credits, err = f.svc.ListPendingCredits(ctx)
	require.NoError(t, err)
	assert.Len(t, credits, 1)
}

func TestClosureVisibility(t *testing.T) {
	f := newClosureFixture(t)
	ctx := context.Background()
	a := f.seedAssignment(t)

	c, err := f.svc.Submit(ctx, 5, &domclosure.SubmitRequest{AssignmentID: a.ID, ReportLink: "r"})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, c.ID, 5, false)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, c.ID, 2, false)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, c.ID, 999, false)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	_, err = f.svc.Get(ctx, c.ID, 999, true)
	assert.NoError(t, err)
}
