package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/loggy/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   dashboard bind address
//	-api string base URL of the API
//	-o string   public origin of the dashboard
//	-l string   log level
//	-secure     mark the session cookie Secure
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-api", "-o", "-l", "-secure"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run the dashboard")
	fs.StringVar(&config.APIBaseURL, "api", config.APIBaseURL, "API base URL")
	fs.StringVar(&config.PortalOrigin, "o", config.PortalOrigin, "public origin of the dashboard")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.CookieSecure, "secure", config.CookieSecure, "secure session cookie")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
