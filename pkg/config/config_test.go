package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
listen_address = ":9090"
read_timeout_seconds = 5
write_timeout_seconds = 10
idle_timeout_seconds = 120

[log]
body_log_paths = ["/echo", "/feedback"]

[metrics]
enabled = true
skip_paths = ["/healthz"]

[auth]
enabled = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.ListenAddress)
	assert.Equal(t, 5, cfg.Server.ReadTimeoutSeconds)
	assert.Equal(t, 10, cfg.Server.WriteTimeoutSeconds)
	assert.Equal(t, 120, cfg.Server.IdleTimeoutSeconds)
	assert.Equal(t, []string{"/echo", "/feedback"}, cfg.Log.BodyLogPaths)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, []string{"/healthz"}, cfg.Metrics.SkipPaths)
	assert.True(t, cfg.Auth.Enabled)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Server.ListenAddress)
	assert.Equal(t, 15, cfg.Server.ReadTimeoutSeconds)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
listen_address = ":8081"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Server.ListenAddress)
	assert.Equal(t, 30, cfg.Server.WriteTimeoutSeconds)
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, `
[server]
listen_address = ""
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen_address")

	path = writeConfig(t, `
[server]
listen_address = ":4000"
tls_certificate = "server.crt"
`)
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tls")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[server`)
	_, err := Load(path)
	require.Error(t, err)
}
