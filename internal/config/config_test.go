package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[db]
host = "db.internal"
port = 6543
user = "engine"
password = "secret"
database = "cards"

[engine]
max_conflict_retries = 5
batch_concurrency = 4
tx_timeout = "3s"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, "db.internal", cfg.DB.Host)
	require.Equal(t, 6543, cfg.DB.Port)
	require.Equal(t, 5, cfg.Engine.MaxConflictRetries)
	require.Equal(t, 4, cfg.Engine.BatchConcurrency)
	require.Equal(t, 3*time.Second, cfg.Engine.TxTimeout.Duration)
	// Untouched keys keep their defaults.
	require.Equal(t, 64, cfg.Engine.RankingCacheSize)
	require.Equal(t, 10, cfg.DB.PoolSize)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[db]
host = "db.internal"
`)
	t.Setenv("PACKS_DB_HOST", "override")
	t.Setenv("PACKS_DB_PASSWORD", "from-env")
	t.Setenv("PACKS_ENGINE_MAX_CONFLICT_RETRIES", "7")
	t.Setenv("PACKS_ENGINE_TX_TIMEOUT", "250ms")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "override", cfg.DB.Host)
	require.Equal(t, "from-env", cfg.DB.Password)
	require.Equal(t, 7, cfg.Engine.MaxConflictRetries)
	require.Equal(t, 250*time.Millisecond, cfg.Engine.TxTimeout.Duration)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), *cfg)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Bad TOML", body: "[engine\n"},
		{name: "Bad duration", body: "[engine]\ntx_timeout = \"soon\"\n"},
		{name: "Zero concurrency", body: "[engine]\nbatch_concurrency = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Errorf("LoadConfig() error = nil, want error")
			}
		})
	}
}
