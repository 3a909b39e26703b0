package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"database_dsn":          "postgres://mc@localhost/mindcandy",
		"verification_code_ttl": "10m",
		"send_code_delay":       int64(time.Second),
		"strict_persistence":    true,
		"log_format":            "json",
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := defaults()
		parseJson(cfg, []string{"-config", pathFlag})

		assert.Equal(t, "postgres://mc@localhost/mindcandy", cfg.DatabaseDSN)
		assert.Equal(t, 10*time.Minute, cfg.VerificationCodeTTL)
		assert.Equal(t, time.Second, cfg.SendCodeDelay)
		assert.True(t, cfg.StrictPersistence)
		assert.Equal(t, "json", cfg.LogFormat)
		// absent keys keep their defaults
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		cfg := defaults()
		parseJson(cfg, []string{"-d", "x.db"})

		assert.Equal(t, defaults(), cfg)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Panics(t, func() { parseJson(defaults(), []string{"-c", bad}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(defaults(), []string{"-c", filepath.Join(dir, "nope.json")}) })
	})
}
