package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at an empty temp dir and clears LUGAT_* vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"LUGAT_CONFIG", "LUGAT_API_URL", "LUGAT_API_TIMEOUT", "LUGAT_DB",
		"LUGAT_LOG_LEVEL", "LUGAT_LOG_FORMAT", "LUGAT_LOG_FILE", "LUGAT_MUTE",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Sound.Muted)
	assert.Empty(t, cfg.Store.Path)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "lugat", "config.yaml"), `
api:
  base_url: https://vocab.example.com/api/
  timeout: 5s
log:
  level: debug
  format: json
sound:
  muted: true
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://vocab.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Sound.Muted)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "api:\n  base_url: http://file.example.com\n")
	t.Setenv("LUGAT_CONFIG", path)
	t.Setenv("LUGAT_API_URL", "http://env.example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.com", cfg.API.BaseURL)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)

	t.Setenv("LUGAT_CONFIG", filepath.Join(dir, "also-nope.yaml"))
	_, err = Load("")
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad url", map[string]string{"LUGAT_API_URL": "not a url"}, "api.base_url"},
		{"bad level", map[string]string{"LUGAT_LOG_LEVEL": "loud"}, "log.level"},
		{"bad format", map[string]string{"LUGAT_LOG_FORMAT": "xml"}, "log.format"},
		{"zero timeout", map[string]string{"LUGAT_API_TIMEOUT": "0s"}, "api.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
