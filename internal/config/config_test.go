package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PG_DSN", "postgres://fm:fm@localhost:5432/fm?sslmode=disable")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("REDIS_ADDR", "localhost:6379")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout.Duration())
	assert.Equal(t, time.Minute, cfg.Redis.DefaultTTL.Duration())
	assert.Equal(t, time.Hour, cfg.Auth.AccessTTL.Duration())
	assert.Equal(t, 14*24*time.Hour, cfg.Auth.RefreshTTL.Duration())
	assert.Equal(t, 10, cfg.Storage.MaxImages)
	assert.Equal(t, "@daily", cfg.Jobs.OrphanSweep)
	assert.True(t, cfg.App.IsDev())
}

func TestLoadRedisURLOverridesAddr(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_URL", "redis://default:pw@redis.internal:6390/2")
	t.Setenv("HTTP_READ_TIMEOUT", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6390", cfg.Redis.Addr)
	assert.Equal(t, "pw", cfg.Redis.Password)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout.Duration())
}

func TestLoadRejectsShortSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDotEnvPicksFirstExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FIELDMATE_DOTENV_PROBE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FIELDMATE_DOTENV_PROBE") })

	LoadDotEnv(filepath.Join(dir, "missing.env"), path)
	assert.Equal(t, "loaded", os.Getenv("FIELDMATE_DOTENV_PROBE"))
}
