package config

import (
	"os"

	"github.com/dmitrijs2005/loggy/internal/flagx"
	"github.com/dmitrijs2005/loggy/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "10s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	Origin         string         `json:"origin"`
	CookieName     string         `json:"cookie_name"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SessionDir     string         `json:"session_dir"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config (or LOGGY_CONFIG). Missing keys keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.Origin != "" {
		cfg.Origin = jc.Origin
	}
	if jc.CookieName != "" {
		cfg.CookieName = jc.CookieName
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionDir != "" {
		cfg.SessionDir = jc.SessionDir
	}
}
