package config

import (
	"os"

	"github.com/dmitrijs2005/loggy/internal/flagx"
	"github.com/dmitrijs2005/loggy/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations accept
// "15m"-style strings; booleans are pointers so that an absent key does not
// reset the current value.
type JsonConfig struct {
	EndpointAddr            string         `json:"endpoint_addr"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	SessionPurgeInterval    timex.Duration `json:"session_purge_interval"`
	CookieName              string         `json:"cookie_name"`
	CookieSecure            *bool          `json:"cookie_secure"`
	PortalOrigin            string         `json:"portal_origin"`
	AuthRateLimit           int            `json:"auth_rate_limit"`
	AuthRateWindow          timex.Duration `json:"auth_rate_window"`
	RedisAddr               string         `json:"redis_addr"`
	TrustProxy              *bool          `json:"trust_proxy"`
	LogLevel                string         `json:"log_level"`
	MaxDBConns              int            `json:"max_db_conns"`
}

// parseJson overlays config with the JSON file named by -c/-config (or
// LOGGY_CONFIG). Keys missing from the file leave the current value alone.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.CookieName, c.CookieName)
	setString(&config.PortalOrigin, c.PortalOrigin)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.LogLevel, c.LogLevel)

	if c.SessionValidityDuration.Duration > 0 {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.SessionPurgeInterval.Duration > 0 {
		config.SessionPurgeInterval = c.SessionPurgeInterval.Duration
	}
	if c.AuthRateWindow.Duration > 0 {
		config.AuthRateWindow = c.AuthRateWindow.Duration
	}
	if c.AuthRateLimit > 0 {
		config.AuthRateLimit = c.AuthRateLimit
	}
	if c.MaxDBConns > 0 {
		config.MaxDBConns = c.MaxDBConns
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.TrustProxy != nil {
		config.TrustProxy = *c.TrustProxy
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
