package config

import (
	"flag"

	"github.com/dmitrijs2005/mindcandy/internal/flagx"
)

var (
	valueFlags = []string{"-d", "-ttl", "-delay", "-secret", "-session-ttl", "-l", "-f"}
	boolFlags  = []string{"-strict"}
)

// parseFlags populates Config fields from command-line flags:
//
//	-d string             database DSN: file path, postgres:// URL or mem://
//	-ttl duration         verification code lifetime
//	-delay duration       simulated code delivery delay
//	-secret string        session marker signing secret
//	-session-ttl duration how long a login is remembered
//	-strict               fail operations whose durable write fails
//	-l string             log level
//	-f string             log format: text, json or zap
//
// args are filtered with flagx.FilterArgs first, so flags owned by other
// parsers (-c) do not interfere. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, valueFlags, boolFlags...)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.DurationVar(&cfg.VerificationCodeTTL, "ttl", cfg.VerificationCodeTTL, "verification code lifetime")
	fs.DurationVar(&cfg.SendCodeDelay, "delay", cfg.SendCodeDelay, "simulated code delivery delay")
	fs.StringVar(&cfg.SessionSecret, "secret", cfg.SessionSecret, "session marker signing secret")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "how long a login is remembered")
	fs.BoolVar(&cfg.StrictPersistence, "strict", cfg.StrictPersistence, "fail operations whose durable write fails")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json, zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
