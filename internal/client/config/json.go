package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mindcandy/internal/flagx"
	"github.com/dmitrijs2005/mindcandy/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// may be strings like "5m" or integer nanoseconds. Absent keys are nil and
// leave the current value alone.
type JsonConfig struct {
	DatabaseDSN         *string         `json:"database_dsn"`
	VerificationCodeTTL *timex.Duration `json:"verification_code_ttl"`
	SendCodeDelay       *timex.Duration `json:"send_code_delay"`
	SessionSecret       *string         `json:"session_secret"`
	SessionTTL          *timex.Duration `json:"session_ttl"`
	StrictPersistence   *bool           `json:"strict_persistence"`
	LogLevel            *string         `json:"log_level"`
	LogFormat           *string         `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Without either flag nothing is loaded. Read and decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.VerificationCodeTTL != nil {
		cfg.VerificationCodeTTL = jc.VerificationCodeTTL.Duration
	}
	if jc.SendCodeDelay != nil {
		cfg.SendCodeDelay = jc.SendCodeDelay.Duration
	}
	if jc.SessionSecret != nil {
		cfg.SessionSecret = *jc.SessionSecret
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.StrictPersistence != nil {
		cfg.StrictPersistence = *jc.StrictPersistence
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
}
