package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := LoadAndBuild(Config{
		Issuer:   "ims-test",
		Audience: "ims-clients",
		TTL:      ttl,
		KID:      "test-key",
	})
	require.NoError(t, err)
	return m
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newManager(t, time.Hour)

	token, jti, err := m.Generator.GenerateAccessToken(42, "STUDENT", "student")
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := m.Verifier.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "STUDENT", claims.Role)
	assert.Equal(t, "student", claims.Portal)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "access", claims.SessionPurpose)
}

func TestPurposeIsEnforced(t *testing.T) {
	m := newManager(t, time.Hour)

	refresh, _, err := m.Generator.GenerateRefreshToken(42)
	require.NoError(t, err)

	_, err = m.Verifier.VerifyAccessToken(refresh)
	assert.Error(t, err)
	_, err = m.Verifier.VerifyRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	m := newManager(t, time.Hour)

	token, _, err := m.Generator.Generate(42, "STUDENT", "", "access", -time.Minute)
	require.NoError(t, err)

	_, err = m.Verifier.Verify(token)
	assert.Error(t, err)
}

func TestIssuerAndAudienceChecked(t *testing.T) {
	m := newManager(t, time.Hour)
	other := newManager(t, time.Hour)

	// Tokens from a different keypair never verify.
	token, _, err := other.Generator.GenerateAccessToken(42, "STUDENT", "")
	require.NoError(t, err)
	_, err = m.Verifier.Verify(token)
	assert.Error(t, err)

	priv, _, err := GenerateEphemeralKeyPair()
	require.NoError(t, err)
	foreign := NewGenerator(priv, "someone-else", "ims-clients", "k", time.Hour)
	verifier := NewVerifier(&priv.PublicKey, "ims-test", "ims-clients")

	token, _, err = foreign.GenerateAccessToken(42, "STUDENT", "")
	require.NoError(t, err)
	_, err = verifier.Verify(token)
	assert.ErrorContains(t, err, "issuer")
}

func TestJTIsAreUnique(t *testing.T) {
	m := newManager(t, time.Hour)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		_, jti, err := m.Generator.GenerateAccessToken(1, "STUDENT", "")
		require.NoError(t, err)
		assert.False(t, seen[jti])
		seen[jti] = true
	}
}
