package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	wstypes "ims-service/internal/domain/websocket"
	"ims-service/internal/pkg/jwt"
	"ims-service/internal/pkg/session"
)

func newHubFixture(t *testing.T) (*Hub, *jwt.Manager, *session.Manager) {
	t.Helper()
	jwtManager, err := jwt.LoadAndBuild(jwt.Config{
		Issuer:   "ims-test",
		Audience: "ims-clients",
		TTL:      time.Hour,
		KID:      "test-key",
	})
	require.NoError(t, err)

	sessionManager := session.NewManager(session.NewMemoryStore())
	hub := NewHub(jwtManager.Verifier, sessionManager, zap.NewNop())
	return hub, jwtManager, sessionManager
}

func createSession(t *testing.T, sm *session.Manager, userID int64, jti string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, sm.CreateSession(context.Background(), &session.SessionData{
		JTI:       jti,
		UserID:    userID,
		Email:     "student@christ.in",
		Role:      "STUDENT",
		LoginAt:   now,
		ExpiresAt: now.Add(time.Hour),
		IsActive:  true,
	}))
}

func TestAuthenticateClient(t *testing.T) {
	hub, jwtManager, sm := newHubFixture(t)
	ctx := context.Background()

	token, jti, err := jwtManager.Generator.GenerateAccessToken(42, "STUDENT", "student")
	require.NoError(t, err)

	// Token without a live session is rejected.
	_, err = hub.AuthenticateClient(ctx, token)
	assert.Error(t, err)

	createSession(t, sm, 42, jti)
	auth, err := hub.AuthenticateClient(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), auth.UserID)
	assert.Equal(t, jti, auth.SessionID)
	assert.Equal(t, "STUDENT", auth.Role)
	assert.Equal(t, "student@christ.in", auth.Email)

	// Blacklisting the jti closes the door.
	require.NoError(t, sm.BlacklistToken(ctx, jti, time.Hour))
	_, err = hub.AuthenticateClient(ctx, token)
	assert.ErrorIs(t, err, ErrTokenBlacklisted)

	_, err = hub.AuthenticateClient(ctx, "garbage")
	assert.Error(t, err)
}

func TestBroadcastTargetsOnlyNamedUsers(t *testing.T) {
	hub, _, _ := newHubFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	alice := &Client{hub: hub, userID: 1, send: make(chan []byte, 8), ctx: ctx, cancel: cancel}
	bob := &Client{hub: hub, userID: 2, send: make(chan []byte, 8), ctx: ctx, cancel: cancel}
	hub.Register <- alice
	hub.Register <- bob

	require.Eventually(t, func() bool { return hub.TotalClients() == 2 }, time.Second, 10*time.Millisecond)
	assert.True(t, hub.IsUserConnected(1))
	assert.False(t, hub.IsUserConnected(3))

	hub.BroadcastNotificationCount(1, 4)

	select {
	case raw := <-alice.send:
		msg, err := wstypes.ParseMessage(raw)
		require.NoError(t, err)
		assert.Equal(t, wstypes.EventTypeNotificationCount, msg.Type)
	case <-time.After(time.Second):
		t.Fatal("alice never received the count event")
	}

	select {
	case <-bob.send:
		t.Fatal("bob received an event addressed to alice")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSystemAlertReachesEveryone(t *testing.T) {
	hub, _, _ := newHubFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	alice := &Client{hub: hub, userID: 1, send: make(chan []byte, 8), ctx: ctx, cancel: cancel}
	bob := &Client{hub: hub, userID: 2, send: make(chan []byte, 8), ctx: ctx, cancel: cancel}
	hub.Register <- alice
	hub.Register <- bob
	require.Eventually(t, func() bool { return hub.TotalClients() == 2 }, time.Second, 10*time.Millisecond)

	hub.BroadcastSystemAlert(&wstypes.SystemAlertData{Severity: "info", Title: "Maintenance", Message: "Tonight 10pm"})

	for _, c := range []*Client{alice, bob} {
		select {
		case raw := <-c.send:
			msg, err := wstypes.ParseMessage(raw)
			require.NoError(t, err)
			assert.Equal(t, wstypes.EventTypeSystemAlert, msg.Type)
		case <-time.After(time.Second):
			t.Fatal("client missed the system alert")
		}
	}
}

func TestMessageRoundTrip(t *testing.T) {
	msg := wstypes.NewMessage(wstypes.EventTypePing, nil)
	raw, err := msg.ToJSON()
	require.NoError(t, err)

	parsed, err := wstypes.ParseMessage(raw)
	require.NoError(t, err)
	assert.Equal(t, wstypes.EventTypePing, parsed.Type)
}
