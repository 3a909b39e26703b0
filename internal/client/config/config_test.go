package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		DatabaseDSN:         "mindcandy.db",
		VerificationCodeTTL: 5 * time.Minute,
		SessionTTL:          720 * time.Hour,
		LogLevel:            "info",
		LogFormat:           "text",
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
}

func TestLoadConfig_UsesDefaultsWithoutArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"mindcandy"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"database_dsn": "from-json.db",
		"log_level":    "warn",
		"session_ttl":  "1h",
	})

	cfg := load([]string{"-c", path, "-d", "mem://", "-strict"})

	want := defaults()
	want.DatabaseDSN = "mem://"
	want.LogLevel = "warn"
	want.SessionTTL = time.Hour
	want.StrictPersistence = true
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		mutate      func(c *Config)
	}{
		{
			name: "all flags",
			args: []string{"-d", "postgres://u@h/db", "-ttl", "2m", "-delay=1s", "-secret", "abc",
				"-session-ttl", "24h", "-strict", "-l", "debug", "-f", "zap"},
			mutate: func(c *Config) {
				c.DatabaseDSN = "postgres://u@h/db"
				c.VerificationCodeTTL = 2 * time.Minute
				c.SendCodeDelay = time.Second
				c.SessionSecret = "abc"
				c.SessionTTL = 24 * time.Hour
				c.StrictPersistence = true
				c.LogLevel = "debug"
				c.LogFormat = "zap"
			},
		},
		{
			name:   "unknown flags are ignored",
			args:   []string{"-x", "1", "-c", "cfg.json", "-d", "a.db"},
			mutate: func(c *Config) { c.DatabaseDSN = "a.db" },
		},
		{name: "bad duration", args: []string{"-ttl", "five"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			want := defaults()
			tt.mutate(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}
