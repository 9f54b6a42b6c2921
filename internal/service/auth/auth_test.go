package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	domauth "ims-service/internal/domain/auth"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/pkg/jwt"
	"ims-service/internal/pkg/session"
	"ims-service/internal/repository/mock"
	"ims-service/internal/storage"
	ws "ims-service/internal/websocket"
)

type authFixture struct {
	svc      *AuthService
	users    domauth.UserRepository
	sessions *session.Manager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	jwtManager, err := jwt.LoadAndBuild(jwt.Config{
		Issuer:   "ims-test",
		Audience: "ims-clients",
		TTL:      time.Hour,
		KID:      "test-key",
	})
	require.NoError(t, err)

	sessionManager := session.NewManager(session.NewMemoryStore())
	users := mock.NewUserRepository(storage.NewMemoryStore(), 0)
	hub := ws.NewHub(jwtManager.Verifier, sessionManager, zap.NewNop())

	svc := NewAuthService(users, jwtManager, sessionManager, hub, zap.NewNop())
	return &authFixture{svc: svc, users: users, sessions: sessionManager}
}

func (f *authFixture) seedUser(t *testing.T, email, password string, role domauth.Role) *domauth.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &domauth.User{
		FullName:     "Test Account",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domauth.StatusActive,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seedUser(t, "student@christ.in", "secret123", domauth.RoleStudent)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, &domauth.LoginRequest{
		Email:    "student@christ.in",
		Password: "secret123",
		Portal:   "student",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int(time.Hour.Seconds()), resp.ExpiresIn)
	assert.Equal(t, u.ID, resp.User.ID)
	assert.Equal(t, domauth.RoleStudent, resp.User.Role)

	// The token authenticates until logout.
	claims, err := f.svc.ValidateToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "STUDENT", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "student@christ.in", "secret123", domauth.RoleStudent)

	_, err := f.svc.Login(context.Background(), &domauth.LoginRequest{
		Email:    "student@christ.in",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestLoginUnknownEmailReadsAsUnauthorized(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), &domauth.LoginRequest{
		Email:    "nobody@christ.in",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestLoginSuspendedAccount(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seedUser(t, "student@christ.in", "secret123", domauth.RoleStudent)
	require.NoError(t, f.users.UpdateStatus(context.Background(), u.ID, domauth.StatusSuspended))

	_, err := f.svc.Login(context.Background(), &domauth.LoginRequest{
		Email:    "student@christ.in",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, xerrors.ErrForbidden)
}

func TestLoginPortalMismatchWritesNoSession(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seedUser(t, "student@christ.in", "secret123", domauth.RoleStudent)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, &domauth.LoginRequest{
		Email:    "student@christ.in",
		Password: "secret123",
		Portal:   "corporate",
	})
	assert.ErrorIs(t, err, xerrors.ErrRoleMismatch)

	// Valid credentials through the wrong portal must leave no trace.
	sessions, err := f.sessions.GetUserActiveSessions(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestLoginAcceptsRoleSelectorAsPortal(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "hod@christ.in", "secret123", domauth.RoleHOD)

	resp, err := f.svc.Login(context.Background(), &domauth.LoginRequest{
		Email:    "hod@christ.in",
		Password: "secret123",
		Portal:   "HOD",
	})
	require.NoError(t, err)
	assert.Equal(t, domauth.RoleHOD, resp.User.Role)

	_, err = f.svc.Login(context.Background(), &domauth.LoginRequest{
		Email:    "hod@christ.in",
		Password: "secret123",
		Portal:   "not-a-portal",
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestRegisterCreatesRecruiterAndLogsIn(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, &domauth.RegisterRequest{
		FullName:    "Acme HR",
		Email:       "hr@acme.example",
		Password:    "secret123",
		CompanyName: "Acme Corp",
	})
	require.NoError(t, err)
	assert.Equal(t, domauth.RoleRecruiter, resp.User.Role)
	assert.Equal(t, "Acme Corp", resp.User.CompanyName)
	assert.NotEmpty(t, resp.AccessToken)

	// Same email again is a duplicate.
	_, err = f.svc.Register(ctx, &domauth.RegisterRequest{
		FullName:    "Acme HR",
		Email:       "hr@acme.example",
		Password:    "secret123",
		CompanyName: "Acme Corp",
	})
	assert.ErrorIs(t, err, xerrors.ErrDuplicateEntry)
}

func TestLogoutKillsTokenAndIsIdempotent(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "student@christ.in", "secret123", domauth.RoleStudent)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, &domauth.LoginRequest{
		Email:    "student@christ.in",
		Password: "secret123",
		Portal:   "student",
	})
	require.NoError(t, err)

	claims, err := f.svc.ValidateToken(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims))
	_, err = f.svc.ValidateToken(ctx, resp.AccessToken)
	assert.Error(t, err)

	// Logging out a dead session succeeds.
	assert.NoError(t, f.svc.Logout(ctx, claims))
}

func TestRestore(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "faculty@christ.in", "secret123", domauth.RoleFaculty)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, &domauth.LoginRequest{
		Email:    "faculty@christ.in",
		Password: "secret123",
		Portal:   "staff",
	})
	require.NoError(t, err)

	info, err := f.svc.Restore(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "faculty@christ.in", info.Email)
	assert.Equal(t, domauth.RoleFaculty, info.Role)

	_, err = f.svc.Restore(ctx, "garbage-token")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestChangePasswordInvalidatesOtherSessions(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seedUser(t, "student@christ.in", "secret123", domauth.RoleStudent)
	ctx := context.Background()

	first, err := f.svc.Login(ctx, &domauth.LoginRequest{Email: u.Email, Password: "secret123", Portal: "student"})
	require.NoError(t, err)
	second, err := f.svc.Login(ctx, &domauth.LoginRequest{Email: u.Email, Password: "secret123", Portal: "student"})
	require.NoError(t, err)

	claims, err := f.svc.ValidateToken(ctx, second.AccessToken)
	require.NoError(t, err)

	// Wrong current password is rejected.
	err = f.svc.ChangePassword(ctx, u.ID, claims.ID, &domauth.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "brandnew1",
	})
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)

	require.NoError(t, f.svc.ChangePassword(ctx, u.ID, claims.ID, &domauth.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "brandnew1",
	}))

	// The session that changed the password survives; the other one dies.
	_, err = f.svc.ValidateToken(ctx, second.AccessToken)
	assert.NoError(t, err)
	_, err = f.svc.ValidateToken(ctx, first.AccessToken)
	assert.Error(t, err)

	// The new password works, the old one does not.
	_, err = f.svc.Login(ctx, &domauth.LoginRequest{Email: u.Email, Password: "secret123"})
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
	_, err = f.svc.Login(ctx, &domauth.LoginRequest{Email: u.Email, Password: "brandnew1"})
	assert.NoError(t, err)
}

func TestEnsureAdminExists(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	// Unconfigured bootstrap is a no-op.
	require.NoError(t, f.svc.EnsureAdminExists(ctx, "", "", ""))

	require.NoError(t, f.svc.EnsureAdminExists(ctx, "admin@christ.in", "bootstrap1", "IMS Administrator"))
	admin, err := f.users.FindByEmail(ctx, "admin@christ.in")
	require.NoError(t, err)
	assert.Equal(t, domauth.RoleAdmin, admin.Role)

	// Re-running against an existing account changes nothing.
	require.NoError(t, f.svc.EnsureAdminExists(ctx, "admin@christ.in", "different", "Someone Else"))
	again, err := f.users.FindByEmail(ctx, "admin@christ.in")
	require.NoError(t, err)
	assert.Equal(t, admin.PasswordHash, again.PasswordHash)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	u := f.seedUser(t, "hr@acme.example", "secret123", domauth.RoleRecruiter)
	ctx := context.Background()

	name := "New Name"
	company := "Acme Corp"
	info, err := f.svc.UpdateProfile(ctx, u.ID, &domauth.UpdateProfileRequest{
		FullName:    &name,
		CompanyName: &company,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", info.FullName)
	assert.Equal(t, "Acme Corp", info.CompanyName)

	stored, err := f.users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, sql.NullString{String: "Acme Corp", Valid: true}, stored.CompanyName)
}

func TestLoginSeededDemoStudent(t *testing.T) {
	jwtManager, err := jwt.LoadAndBuild(jwt.Config{
		Issuer:   "ims-test",
		Audience: "ims-clients",
		TTL:      time.Hour,
		KID:      "test-key",
	})
	require.NoError(t, err)

	blobStore := storage.NewMemoryStore()
	require.NoError(t, mock.SeedUsers(context.Background(), blobStore))

	sessions := session.NewManager(session.NewMemoryStore())
	svc := NewAuthService(
		mock.NewUserRepository(blobStore, 0),
		jwtManager,
		sessions,
		ws.NewHub(jwtManager.Verifier, sessions, zap.NewNop()),
		zap.NewNop(),
	)

	resp, err := svc.Login(context.Background(), &domauth.LoginRequest{
		Email:    "student@christ.in",
		Password: "admin",
		Portal:   "student",
	})
	require.NoError(t, err)
	assert.Equal(t, domauth.RoleStudent, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
}
