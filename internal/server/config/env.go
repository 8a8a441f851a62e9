package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/loggy/internal/flagx"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// EnvConfig maps LOGGY_* environment variables onto Config fields.
type EnvConfig struct {
	EndpointAddr            string        `env:"LOGGY_ADDR"`
	DatabaseDSN             string        `env:"LOGGY_DATABASE_DSN"`
	SecretKey               string        `env:"LOGGY_SECRET_KEY"`
	SessionValidityDuration time.Duration `env:"LOGGY_SESSION_TTL"`
	SessionPurgeInterval    time.Duration `env:"LOGGY_SESSION_PURGE_INTERVAL"`
	CookieName              string        `env:"LOGGY_COOKIE_NAME"`
	CookieSecure            bool          `env:"LOGGY_COOKIE_SECURE"`
	PortalOrigin            string        `env:"LOGGY_PORTAL_ORIGIN"`
	AuthRateLimit           int           `env:"LOGGY_AUTH_RATE_LIMIT"`
	AuthRateWindow          time.Duration `env:"LOGGY_AUTH_RATE_WINDOW"`
	RedisAddr               string        `env:"LOGGY_REDIS_ADDR"`
	TrustProxy              bool          `env:"LOGGY_TRUST_PROXY"`
	LogLevel                string        `env:"LOGGY_LOG_LEVEL"`
	MaxDBConns              int           `env:"LOGGY_MAX_DB_CONNS"`
}

// parseEnv loads an optional dotenv file (-env-file, default ".env") into
// the process environment without overriding variables that are already
// set, then decodes LOGGY_* variables over config.
//
// Fields whose variable is absent keep their current value. A malformed
// value (e.g. LOGGY_SESSION_TTL=soon) panics, like the other layers.
func parseEnv(config *Config) {
	if err := godotenv.Load(flagx.EnvFileFlag(".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	e := &EnvConfig{
		EndpointAddr:            config.EndpointAddr,
		DatabaseDSN:             config.DatabaseDSN,
		SecretKey:               config.SecretKey,
		SessionValidityDuration: config.SessionValidityDuration,
		SessionPurgeInterval:    config.SessionPurgeInterval,
		CookieName:              config.CookieName,
		CookieSecure:            config.CookieSecure,
		PortalOrigin:            config.PortalOrigin,
		AuthRateLimit:           config.AuthRateLimit,
		AuthRateWindow:          config.AuthRateWindow,
		RedisAddr:               config.RedisAddr,
		TrustProxy:              config.TrustProxy,
		LogLevel:                config.LogLevel,
		MaxDBConns:              config.MaxDBConns,
	}

	if err := envdecode.StrictDecode(e); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		panic(err)
	}

	config.EndpointAddr = e.EndpointAddr
	config.DatabaseDSN = e.DatabaseDSN
	config.SecretKey = e.SecretKey
	config.SessionValidityDuration = e.SessionValidityDuration
	config.SessionPurgeInterval = e.SessionPurgeInterval
	config.CookieName = e.CookieName
	config.CookieSecure = e.CookieSecure
	config.PortalOrigin = e.PortalOrigin
	config.AuthRateLimit = e.AuthRateLimit
	config.AuthRateWindow = e.AuthRateWindow
	config.RedisAddr = e.RedisAddr
	config.TrustProxy = e.TrustProxy
	config.LogLevel = e.LogLevel
	config.MaxDBConns = e.MaxDBConns
}
