// Package config loads runtime configuration for the shigezane-admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults); SHIGEZANE_API_BASE_URL
//     replaces the default API base URL.
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST backend
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//	-d string   path of the local session database
//
// # JSON schema
//
// Durations are timex.Duration values, so either strings like "10m" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://example.azurewebsites.net/api",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "session_db": "shigezane.db",
//	  "export_dir": ".",
//	  "stale_time": "10m",
//	  "gc_time": "15m",
//	  "retry_delay": "1s",
//	  "upload_concurrency": 4
//	}
package config
