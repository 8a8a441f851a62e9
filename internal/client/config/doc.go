// Package config loads runtime configuration for the Loggy terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or LOGGY_CONFIG.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the API
//	-o string   Origin header sent on writes
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "origin": "http://localhost:3000",
//	  "request_timeout": "10s"
//	}
package config
