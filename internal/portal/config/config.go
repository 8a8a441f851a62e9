// Package config handles configuration for the dashboard server. It is
// layered like the API server's: defaults, dotenv and environment, a JSON
// file, then command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/loggy/internal/common"
)

// Config holds runtime settings for the dashboard.
//
// PortalOrigin must be the public origin the browser sees; it is also sent
// as the Origin header on API writes and has to match the API's setting.
type Config struct {
	EndpointAddr string
	APIBaseURL   string
	APITimeout   time.Duration
	PortalOrigin string
	CookieName   string
	CookieSecure bool
	LogLevel     string
}

func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.APIBaseURL = "http://localhost:8080"
	c.APITimeout = 10 * time.Second
	c.PortalOrigin = "http://localhost:3000"
	c.CookieName = common.DefaultCookieName
	c.CookieSecure = false
	c.LogLevel = "info"
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
