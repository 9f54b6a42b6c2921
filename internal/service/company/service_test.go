package company

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domcompany "ims-service/internal/domain/company"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/pkg/session"
	"ims-service/internal/repository/mock"
	notifsvc "ims-service/internal/service/notification"
	"ims-service/internal/storage"
	ws "ims-service/internal/websocket"
)

func newCompanyService(t *testing.T) *CompanyService {
	t.Helper()
	store := storage.NewMemoryStore()
	hub := ws.NewHub(nil, session.NewManager(session.NewMemoryStore()), zap.NewNop())
	notifications := notifsvc.NewNotificationService(mock.NewNotificationRepository(store, 0), hub, zap.NewNop())
	return NewCompanyService(mock.NewCompanyRepository(store, 0), notifications, zap.NewNop())
}

func TestCreateOnePerRecruiter(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, 100, &domcompany.CreateRequest{Name: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, domcompany.StatusPending, c.Status)

	_, err = svc.Create(ctx, 100, &domcompany.CreateRequest{Name: "Acme Again"})
	assert.ErrorIs(t, err, xerrors.ErrDuplicateEntry)
}

func TestTrustScoreTracksProfileCompleteness(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, 100, &domcompany.CreateRequest{Name: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, 20, c.TrustScore)

	full, err := svc.Create(ctx, 101, &domcompany.CreateRequest{
		Name:        "Globex",
		Industry:    "Manufacturing",
		Website:     "https://globex.example",
		Description: "A diversified multinational with a strong internship programme across several divisions.",
		HRName:      "H. Resources",
		HREmail:     "hr@globex.example",
		HRPhone:     "+91-80-0000-0000",
		Locations:   []string{"Bangalore", "Pune"},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, full.TrustScore)

	// A short description scores less than a substantial one.
	short := "Tiny blurb."
	updated, err := svc.Update(ctx, 100, &domcompany.UpdateRequest{Description: &short})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.TrustScore)
}

func TestApprovalDecisions(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, 100, &domcompany.CreateRequest{Name: "Acme Corp"})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, c.ID, 7, &domcompany.DecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, domcompany.StatusApproved, approved.Status)
	assert.Equal(t, int64(7), approved.DecidedBy.Int64)

	// Approve and reject act on pending companies only.
	_, err = svc.Reject(ctx, c.ID, 7, &domcompany.DecisionRequest{Reason: "late"})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
	_, err = svc.Approve(ctx, c.ID, 7, &domcompany.DecisionRequest{})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestBanFromAnyStatus(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, 100, &domcompany.CreateRequest{Name: "Acme Corp"})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, c.ID, 7, &domcompany.DecisionRequest{})
	require.NoError(t, err)

	banned, err := svc.Ban(ctx, c.ID, 7, &domcompany.DecisionRequest{Reason: "fraudulent postings"})
	require.NoError(t, err)
	assert.Equal(t, domcompany.StatusBanned, banned.Status)
	assert.Equal(t, "fraudulent postings", banned.StatusReason.String)

	_, err = svc.Ban(ctx, c.ID, 7, &domcompany.DecisionRequest{})
	assert.ErrorIs(t, err, xerrors.ErrConflict)

	// A banned company can no longer edit its profile.
	name := "Rebrand Inc"
	_, err = svc.Update(ctx, 100, &domcompany.UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, xerrors.ErrForbidden)
}

func TestUnbanRestoresApproval(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, 100, &domcompany.CreateRequest{Name: "Acme Corp"})
	require.NoError(t, err)

	// Only banned companies can be unbanned.
	_, err = svc.Unban(ctx, c.ID, 7, &domcompany.DecisionRequest{})
	assert.ErrorIs(t, err, xerrors.ErrConflict)

	_, err = svc.Approve(ctx, c.ID, 7, &domcompany.DecisionRequest{})
	require.NoError(t, err)
	_, err = svc.Ban(ctx, c.ID, 7, &domcompany.DecisionRequest{Reason: "fraudulent postings"})
	require.NoError(t, err)

	restored, err := svc.Unban(ctx, c.ID, 7, &domcompany.DecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, domcompany.StatusApproved, restored.Status)

	// Profile edits work again once the ban is lifted.
	name := "Acme Corporation"
	updated, err := svc.Update(ctx, 100, &domcompany.UpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", updated.Name)
}

func TestListFilters(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, 100, &domcompany.CreateRequest{Name: "Acme Corp", Industry: "Robotics"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 101, &domcompany.CreateRequest{Name: "Globex", Industry: "Manufacturing"})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, a.ID, 7, &domcompany.DecisionRequest{})
	require.NoError(t, err)

	resp, err := svc.List(ctx, &domcompany.ListFilters{Status: string(domcompany.StatusPending)})
	require.NoError(t, err)
	require.Len(t, resp.Companies, 1)
	assert.Equal(t, "Globex", resp.Companies[0].Name)

	resp, err = svc.List(ctx, &domcompany.ListFilters{Search: "robot"})
	require.NoError(t, err)
	require.Len(t, resp.Companies, 1)
	assert.Equal(t, "Acme Corp", resp.Companies[0].Name)
	assert.NotZero(t, resp.Companies[0].TrustScore)
}

func TestGetMine(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	_, err := svc.GetMine(ctx, 100)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	created, err := svc.Create(ctx, 100, &domcompany.CreateRequest{Name: "Acme Corp"})
	require.NoError(t, err)

	mine, err := svc.GetMine(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, created.ID, mine.ID)
}
