package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "₹", cfg.Currency)
	assert.Equal(t, IDSchemeSequence, cfg.IDScheme)
	assert.False(t, cfg.LogUseCases)
	assert.Empty(t, cfg.MetricsFile)
	assert.Equal(t, "safend.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadWith_EnvOverrides(t *testing.T) {
	cfg, err := LoadWith(envOf(map[string]string{
		"SAFEND_DB":           "/tmp/orders.db",
		"SAFEND_CURRENCY":     "$",
		"SAFEND_LOG_USECASES": "true",
		"SAFEND_LOG_LEVEL":    "debug",
		"SAFEND_METRICS_FILE": "/tmp/safend.prom",
		"SAFEND_ID_SCHEME":    "random",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/orders.db", cfg.DBPath)
	assert.Equal(t, "$", cfg.Currency)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "/tmp/safend.prom", cfg.MetricsFile)
	assert.Equal(t, IDSchemeRandom, cfg.IDScheme)
}

func TestLoadWith_InvalidEnvFallsBack(t *testing.T) {
	cfg, err := LoadWith(envOf(map[string]string{
		"SAFEND_LOG_USECASES": "maybe",
		"SAFEND_LOG_LEVEL":    "loud",
		"SAFEND_ID_SCHEME":    "uuid",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, IDSchemeSequence, cfg.IDScheme)
}

func TestLoadWith_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safend.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /data/safend.db\ncurrency: \"€\"\nlog_use_cases: true\nid_scheme: random\n"), 0o644))

	cfg, err := LoadWith(envOf(map[string]string{
		"SAFEND_CONFIG":   path,
		"SAFEND_CURRENCY": "£",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/data/safend.db", cfg.DBPath)
	assert.Equal(t, "£", cfg.Currency)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, IDSchemeRandom, cfg.IDScheme)
}

func TestLoadWith_FileRejectsUnknownScheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safend.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id_scheme: timestamp\nlog_level: chatty\n"), 0o644))

	_, err := LoadWith(envOf(map[string]string{"SAFEND_CONFIG": path}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id_scheme")
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoadWith_MissingFile(t *testing.T) {
	_, err := LoadWith(envOf(map[string]string{"SAFEND_CONFIG": filepath.Join(t.TempDir(), "absent.yaml")}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "orders.db"), expandHome("~/orders.db"))
	assert.Equal(t, "/abs/orders.db", expandHome("/abs/orders.db"))
}
