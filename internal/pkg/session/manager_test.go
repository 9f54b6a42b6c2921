package session

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "ims-service/internal/pkg/errors"
)

func newSession(userID int64, jti string, ttl time.Duration) *SessionData {
	now := time.Now()
	return &SessionData{
		JTI:            jti,
		UserID:         userID,
		Email:          "student@christ.in",
		Role:           "STUDENT",
		Portal:         "student",
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(ttl),
		IsActive:       true,
	}
}

func TestManagerSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	sess := newSession(42, "jti-1", time.Hour)
	require.NoError(t, m.CreateSession(ctx, sess))

	got, err := m.GetSession(ctx, 42, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "STUDENT", got.Role)

	require.NoError(t, m.InvalidateSession(ctx, 42, "jti-1"))
	_, err = m.GetSession(ctx, 42, "jti-1")
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)

	// Logout is idempotent; invalidating again is not an error.
	assert.NoError(t, m.InvalidateSession(ctx, 42, "jti-1"))
}

func TestManagerRejectsExpiredSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	err := m.CreateSession(ctx, newSession(1, "jti-old", -time.Minute))
	assert.Error(t, err)

	// A session whose payload says expired is cleared on read.
	sess := newSession(1, "jti-2", time.Hour)
	require.NoError(t, m.CreateSession(ctx, sess))
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	data, err := json.Marshal(sess)
	require.NoError(t, err)
	require.NoError(t, m.store.Set(ctx, m.sessionKey(1, "jti-2"), data, time.Hour))

	_, err = m.GetSession(ctx, 1, "jti-2")
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
}

func TestManagerCorruptSessionTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store)

	require.NoError(t, store.Set(ctx, m.sessionKey(7, "bad"), []byte("{not json"), time.Hour))

	_, err := m.GetSession(ctx, 7, "bad")
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)

	// The corrupt record was cleared.
	_, err = store.Get(ctx, m.sessionKey(7, "bad"))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestManagerInvalidateAllUserSessions(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	require.NoError(t, m.CreateSession(ctx, newSession(9, "a", time.Hour)))
	require.NoError(t, m.CreateSession(ctx, newSession(9, "b", time.Hour)))
	require.NoError(t, m.CreateSession(ctx, newSession(10, "c", time.Hour)))

	sessions, err := m.GetUserActiveSessions(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	require.NoError(t, m.InvalidateAllUserSessions(ctx, 9))

	sessions, err = m.GetUserActiveSessions(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	// User 10 is untouched.
	_, err = m.GetSession(ctx, 10, "c")
	assert.NoError(t, err)
}

func TestManagerBlacklist(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	ok, err := m.IsTokenBlacklisted(ctx, "jti-x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.BlacklistToken(ctx, "jti-x", time.Hour))

	ok, err = m.IsTokenBlacklisted(ctx, "jti-x")
	require.NoError(t, err)
	assert.True(t, ok)

	// Zero or negative TTL is a no-op; the token is already past expiry.
	require.NoError(t, m.BlacklistToken(ctx, "jti-y", 0))
	ok, err = m.IsTokenBlacklisted(ctx, "jti-y")
	require.NoError(t, err)
	assert.False(t, ok)
}

// wrappingStore decorates a Store with error wrapping, as a remote-backed
// implementation adding call context would.
type wrappingStore struct {
	Store
}

func (s wrappingStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.Store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("store get %s: %w", key, err)
	}
	return data, nil
}

func TestBlacklistCheckUnwrapsStoreErrors(t *testing.T) {
	ctx := context.Background()
	m := NewManager(wrappingStore{NewMemoryStore()})

	// A wrapped miss still means "not blacklisted", not a lookup failure.
	ok, err := m.IsTokenBlacklisted(ctx, "jti-x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client)
	ctx := context.Background()

	m := NewManager(store)
	require.NoError(t, m.CreateSession(ctx, newSession(5, "r1", time.Hour)))
	require.NoError(t, m.CreateSession(ctx, newSession(5, "r2", time.Hour)))

	got, err := m.GetSession(ctx, 5, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.JTI)

	keys, err := store.Keys(ctx, "session:5:*")
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	// TTL expiry through the store.
	mr.FastForward(2 * time.Hour)
	_, err = m.GetSession(ctx, 5, "r1")
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
}
