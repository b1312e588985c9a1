package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"WBS_CONFIG", "WBS_DB", "WBS_HTTP_ADDR", "WBS_LATENCY_MS", "WBS_LOG_USE_CASES", "WBS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	return home
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".wbs", "wbs.db"), cfg.DBPath)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr)
	assert.Zero(t, cfg.Latency())
	assert.False(t, cfg.Logging.UseCases)
}

func TestLoad_ReadsDefaultFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".wbs", "config.yaml"), `
db_path: /data/wbs.db
http:
  addr: ":9000"
engine:
  latency_ms: 250
logging:
  use_cases: true
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/wbs.db", cfg.DBPath)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Latency())
	assert.True(t, cfg.Logging.UseCases)
	assert.Equal(t, "info", cfg.Logging.Level, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.yaml")
	writeFile(t, path, "engine:\n  latency_ms: 250\n")
	t.Setenv("WBS_CONFIG", path)
	t.Setenv("WBS_LATENCY_MS", "10")
	t.Setenv("WBS_DB", "/tmp/other.db")
	t.Setenv("WBS_LOG_USE_CASES", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, cfg.Latency())
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.True(t, cfg.Logging.UseCases)
}

func TestLoad_InvalidEnvIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("WBS_LATENCY_MS", "soon")
	t.Setenv("WBS_LOG_USE_CASES", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.Latency())
	assert.False(t, cfg.Logging.UseCases)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	home := isolate(t)
	t.Setenv("WBS_CONFIG", filepath.Join(home, "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFile_RejectsBadYAMLAndNegativeLatency(t *testing.T) {
	home := isolate(t)

	bad := filepath.Join(home, "bad.yaml")
	writeFile(t, bad, "http: [unclosed")
	_, err := LoadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")

	neg := filepath.Join(home, "neg.yaml")
	writeFile(t, neg, "engine:\n  latency_ms: -5\n")
	_, err = LoadFile(neg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latency_ms")
}
