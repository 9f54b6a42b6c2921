// internal/pkg/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	xerrors "ims-service/internal/pkg/errors"
)

// Manager owns session persistence. Sessions write through to the Store
// synchronously; a session either fully exists or does not.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) sessionKey(userID int64, jti string) string {
	return fmt.Sprintf("session:%d:%s", userID, jti)
}

func (m *Manager) blacklistKey(jti string) string {
	return fmt.Sprintf("blacklist:%s", jti)
}

// CreateSession persists a new session.
func (m *Manager) CreateSession(ctx context.Context, sess *SessionData) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := m.store.Set(ctx, m.sessionKey(sess.UserID, sess.JTI), data, ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// GetSession hydrates a persisted session. A session that fails to parse is
// treated as absent: the corrupt record is cleared and the caller sees
// ErrSessionExpired, never a fatal error.
func (m *Manager) GetSession(ctx context.Context, userID int64, jti string) (*SessionData, error) {
	key := m.sessionKey(userID, jti)

	data, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, xerrors.ErrSessionExpired
	}

	var sess SessionData
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt record: clear it and report unauthenticated.
		_ = m.store.Delete(ctx, key)
		return nil, xerrors.ErrSessionExpired
	}

	if !sess.IsActive || time.Now().After(sess.ExpiresAt) {
		_ = m.store.Delete(ctx, key)
		return nil, xerrors.ErrSessionExpired
	}

	return &sess, nil
}

// TouchSession updates the last-activity timestamp, keeping the original
// expiry.
func (m *Manager) TouchSession(ctx context.Context, userID int64, jti string) error {
	sess, err := m.GetSession(ctx, userID, jti)
	if err != nil {
		return nil // nothing to touch
	}

	sess.LastActivityAt = time.Now()
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return m.store.Set(ctx, m.sessionKey(userID, jti), data, ttl)
}

// InvalidateSession removes a session. Removing an absent session is not an
// error; logout is idempotent.
func (m *Manager) InvalidateSession(ctx context.Context, userID int64, jti string) error {
	return m.store.Delete(ctx, m.sessionKey(userID, jti))
}

// InvalidateAllUserSessions removes every session for a user.
func (m *Manager) InvalidateAllUserSessions(ctx context.Context, userID int64) error {
	keys, err := m.store.Keys(ctx, fmt.Sprintf("session:%d:*", userID))
	if err != nil {
		return fmt.Errorf("failed to scan sessions: %w", err)
	}
	for _, key := range keys {
		if err := m.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete session %s: %w", key, err)
		}
	}
	return nil
}

// GetUserActiveSessions lists every live session for a user. Unparseable
// records are skipped.
func (m *Manager) GetUserActiveSessions(ctx context.Context, userID int64) ([]*SessionData, error) {
	keys, err := m.store.Keys(ctx, fmt.Sprintf("session:%d:*", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}

	sessions := make([]*SessionData, 0, len(keys))
	for _, key := range keys {
		data, err := m.store.Get(ctx, key)
		if err != nil {
			continue
		}
		var sess SessionData
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		sessions = append(sessions, &sess)
	}
	return sessions, nil
}

// BlacklistToken marks a jti revoked until the token itself would expire.
func (m *Manager) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return m.store.Set(ctx, m.blacklistKey(jti), []byte("revoked"), ttl)
}

// IsTokenBlacklisted reports whether a jti has been revoked.
func (m *Manager) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	_, err := m.store.Get(ctx, m.blacklistKey(jti))
	if xerrors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
