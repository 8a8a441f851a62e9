package config

import (
	"time"

	"github.com/dmitrijs2005/loggy/internal/common"
)

// Config holds runtime settings for the Loggy terminal client.
//
// Fields:
//   - APIBaseURL: base URL of the Loggy API.
//   - Origin: sent as the Origin header on writes; must equal the API's portal origin.
//   - CookieName: session cookie name used by the API.
//   - RequestTimeout: per-request HTTP timeout.
//   - SessionDir: directory, relative to the working directory, where the session is kept.
type Config struct {
	APIBaseURL     string
	Origin         string
	CookieName     string
	RequestTimeout time.Duration
	SessionDir     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.Origin = "http://localhost:3000"
	c.CookieName = common.DefaultCookieName
	c.RequestTimeout = 10 * time.Second
	c.SessionDir = ".loggy"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
