// Package config loads runtime configuration for the KYC review console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. KYC_* environment variables, optionally read from a .env file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     KYC service base URL
//	-t duration   per-request timeout ("15s")
//	-n duration   notification lifetime ("5s")
//	-d string     SQLite storage path
//	-o string     document download directory
//	-l string     log level
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "5s" or integer
// nanoseconds:
//
//	{
//	  "service_base_url": "https://kyc.example.org",
//	  "request_timeout": "15s",
//	  "notification_ttl": "5s",
//	  "storage_path": "reviewer.db"
//	}
package config
