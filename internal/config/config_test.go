package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultServerHost, cfg.Server.Host)
	assert.Equal(t, defaultServerPort, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL.Std())
	assert.Empty(t, cfg.Database.URL)
}

func TestLoadParsesDurations(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout: 15s
auth:
  token_ttl: 2h
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL.Std())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `
server:
  read_timeout: soon
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesWin(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://file-value
`)
	t.Setenv("DATABASE_URL", "postgres://env-value")
	t.Setenv("OWNER_OPEN_ID", "owner-123")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env-value", cfg.Database.URL)
	assert.Equal(t, "owner-123", cfg.Auth.OwnerOpenID)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestValidateRequiresHostAndPort(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.Server.Host = "0.0.0.0"
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 8080
	assert.NoError(t, cfg.Validate())
}

func TestEmptyDatabaseURLIsValid(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}
