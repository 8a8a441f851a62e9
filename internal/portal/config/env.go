package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/loggy/internal/flagx"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type EnvConfig struct {
	EndpointAddr string        `env:"LOGGY_PORTAL_ADDR"`
	APIBaseURL   string        `env:"LOGGY_API_BASE_URL"`
	APITimeout   time.Duration `env:"LOGGY_API_TIMEOUT"`
	PortalOrigin string        `env:"LOGGY_PORTAL_ORIGIN"`
	CookieName   string        `env:"LOGGY_COOKIE_NAME"`
	CookieSecure bool          `env:"LOGGY_COOKIE_SECURE"`
	LogLevel     string        `env:"LOGGY_LOG_LEVEL"`
}

// parseEnv loads the optional dotenv file and overlays LOGGY_* variables.
// Malformed values panic.
func parseEnv(config *Config) {
	if err := godotenv.Load(flagx.EnvFileFlag(".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	e := &EnvConfig{
		EndpointAddr: config.EndpointAddr,
		APIBaseURL:   config.APIBaseURL,
		APITimeout:   config.APITimeout,
		PortalOrigin: config.PortalOrigin,
		CookieName:   config.CookieName,
		CookieSecure: config.CookieSecure,
		LogLevel:     config.LogLevel,
	}

	if err := envdecode.StrictDecode(e); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		panic(err)
	}

	config.EndpointAddr = e.EndpointAddr
	config.APIBaseURL = e.APIBaseURL
	config.APITimeout = e.APITimeout
	config.PortalOrigin = e.PortalOrigin
	config.CookieName = e.CookieName
	config.CookieSecure = e.CookieSecure
	config.LogLevel = e.LogLevel
}
