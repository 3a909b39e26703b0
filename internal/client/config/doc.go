// Package config loads runtime configuration for the MindCandy CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "5m"
// or integer nanoseconds. Keys that are left out keep their defaults:
//
//	{
//	  "database_dsn": "mindcandy.db",
//	  "verification_code_ttl": "5m",
//	  "send_code_delay": "1s",
//	  "session_secret": "",
//	  "session_ttl": "720h",
//	  "strict_persistence": false,
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// This package does not read environment variables; use the JSON file or
// flags to configure values.
package config
