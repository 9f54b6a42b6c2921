package mock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ims-service/internal/domain/auth"
	"ims-service/internal/domain/guide"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/storage"
)

func TestSeedUsersIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, SeedUsers(ctx, store))
	repo := NewUserRepository(store, 0)

	u, err := repo.FindByEmail(ctx, "student@christ.in")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleStudent, u.Role)
	assert.Equal(t, auth.StatusActive, u.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("admin")))

	// A second seed run leaves existing users untouched.
	require.NoError(t, repo.UpdateStatus(ctx, u.ID, auth.StatusSuspended))
	require.NoError(t, SeedUsers(ctx, store))
	again, err := repo.FindByEmail(ctx, "student@christ.in")
	require.NoError(t, err)
	assert.Equal(t, auth.StatusSuspended, again.Status)
}

func TestUserRepositoryDuplicateEmailIsCaseInsensitive(t *testing.T) {
	repo := NewUserRepository(storage.NewMemoryStore(), 0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &auth.User{Email: "Someone@Christ.in", Role: auth.RoleStudent, Status: auth.StatusActive}))
	err := repo.Create(ctx, &auth.User{Email: "someone@christ.in", Role: auth.RoleStudent, Status: auth.StatusActive})
	assert.ErrorIs(t, err, xerrors.ErrDuplicateEntry)

	exists, err := repo.ExistsByEmail(ctx, "SOMEONE@christ.in")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNextIDGrowsPastDeletions(t *testing.T) {
	users := NewUserRepository(storage.NewMemoryStore(), 0)
	ctx := context.Background()

	a := &auth.User{Email: "a@x.y", Role: auth.RoleStudent, Status: auth.StatusActive}
	b := &auth.User{Email: "b@x.y", Role: auth.RoleStudent, Status: auth.StatusActive}
	require.NoError(t, users.Create(ctx, a))
	require.NoError(t, users.Create(ctx, b))
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
}

func TestCollectionLatencyHonorsContext(t *testing.T) {
	repo := NewUserRepository(storage.NewMemoryStore(), 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := repo.FindByEmail(ctx, "anyone@x.y")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGuideRepositoryDuplicateGuards(t *testing.T) {
	repo := NewGuideRepository(storage.NewMemoryStore(), 0)
	ctx := context.Background()

	a := &guide.Assignment{ApplicationID: 1, StudentID: 5, GuideID: 2, Status: guide.StatusInProgress}
	require.NoError(t, repo.CreateAssignment(ctx, a))
	err := repo.CreateAssignment(ctx, &guide.Assignment{ApplicationID: 1, StudentID: 5, GuideID: 3})
	assert.ErrorIs(t, err, xerrors.ErrDuplicateEntry)

	log := &guide.WeeklyLog{AssignmentID: a.ID, Week: 1, Status: guide.LogSubmitted}
	require.NoError(t, repo.CreateWeeklyLog(ctx, log))
	err = repo.CreateWeeklyLog(ctx, &guide.WeeklyLog{AssignmentID: a.ID, Week: 1})
	assert.ErrorIs(t, err, xerrors.ErrDuplicateEntry)

	// Different week is fine; listing comes back week-ordered.
	require.NoError(t, repo.CreateWeeklyLog(ctx, &guide.WeeklyLog{AssignmentID: a.ID, Week: 3}))
	require.NoError(t, repo.CreateWeeklyLog(ctx, &guide.WeeklyLog{AssignmentID: a.ID, Week: 2}))
	logs, err := repo.ListWeeklyLogs(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{logs[0].Week, logs[1].Week, logs[2].Week})
}

func TestFileStoreBackedRepositorySurvivesReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	users := NewUserRepository(store, 0)
	u := &auth.User{Email: "persist@x.y", Role: auth.RoleStudent, Status: auth.StatusActive}
	require.NoError(t, users.Create(ctx, u))

	// A fresh store over the same directory sees the data.
	reopened, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	again := NewUserRepository(reopened, 0)
	got, err := again.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "persist@x.y", got.Email)
}
