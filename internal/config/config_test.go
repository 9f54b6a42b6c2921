package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsToPostgresWithRedis(t *testing.T) {
	t.Setenv("IMS_MODE", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()
	assert.Equal(t, ModePostgres, cfg.Mode)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadMockModeNeedsNoInfrastructure(t *testing.T) {
	t.Setenv("IMS_MODE", ModeMock)
	t.Setenv("REDIS_ADDR", "")

	// Without an explicit Redis address the mock backend must come up on
	// the file store alone.
	cfg := Load()
	require.Equal(t, ModeMock, cfg.Mode)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "./data", cfg.MockDataDir)
}

func TestLoadMockModeRedisOptIn(t *testing.T) {
	t.Setenv("IMS_MODE", ModeMock)
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	cfg := Load()
	assert.Equal(t, "redis.internal:6379", cfg.RedisAddr)
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("MOCK_LATENCY", "2s")
	assert.Equal(t, 2*time.Second, getEnvDuration("MOCK_LATENCY", time.Minute))

	// Bare numbers are read as milliseconds.
	t.Setenv("MOCK_LATENCY", "250")
	assert.Equal(t, 250*time.Millisecond, getEnvDuration("MOCK_LATENCY", time.Minute))

	t.Setenv("MOCK_LATENCY", "not-a-duration")
	assert.Equal(t, time.Minute, getEnvDuration("MOCK_LATENCY", time.Minute))
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	assert.Nil(t, getEnvList("CORS_ALLOWED_ORIGINS"))

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvList("CORS_ALLOWED_ORIGINS"))
}
