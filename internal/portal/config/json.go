package config

import (
	"os"

	"github.com/dmitrijs2005/loggy/internal/flagx"
	"github.com/dmitrijs2005/loggy/internal/timex"
	"github.com/goccy/go-json"
)

type JsonConfig struct {
	EndpointAddr string         `json:"portal_addr"`
	APIBaseURL   string         `json:"api_base_url"`
	APITimeout   timex.Duration `json:"api_timeout"`
	PortalOrigin string         `json:"portal_origin"`
	CookieName   string         `json:"cookie_name"`
	CookieSecure *bool          `json:"cookie_secure"`
	LogLevel     string         `json:"log_level"`
}

// parseJson overlays config with the JSON file named by -c/-config (or
// LOGGY_CONFIG). Keys missing from the file leave the current value alone.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
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

	for dst, v := range map[*string]string{
		&config.EndpointAddr: c.EndpointAddr,
		&config.APIBaseURL:   c.APIBaseURL,
		&config.PortalOrigin: c.PortalOrigin,
		&config.CookieName:   c.CookieName,
		&config.LogLevel:     c.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}
	if c.APITimeout.Duration > 0 {
		config.APITimeout = c.APITimeout.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
}
