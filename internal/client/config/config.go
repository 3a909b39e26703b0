package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the MindCandy CLI.
//
// Units: the TTL and delay fields are time.Duration values.
type Config struct {
	DatabaseDSN         string
	VerificationCodeTTL time.Duration
	SendCodeDelay       time.Duration
	SessionSecret       string
	SessionTTL          time.Duration
	StrictPersistence   bool
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "mindcandy.db"
	c.VerificationCodeTTL = 5 * time.Minute
	c.SendCodeDelay = 0
	c.SessionSecret = ""
	c.SessionTTL = 30 * 24 * time.Hour
	c.StrictPersistence = false
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
