package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/loggy/internal/buildinfo"
	"github.com/dmitrijs2005/loggy/internal/client/api"
	"github.com/dmitrijs2005/loggy/internal/logging"
	"github.com/dmitrijs2005/loggy/internal/portal"
	"github.com/dmitrijs2005/loggy/internal/portal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	client := api.New(cfg.APIBaseURL, cfg.PortalOrigin, cfg.CookieName, cfg.APITimeout)
	srv := portal.NewServer(portal.Options{
		Address:      cfg.EndpointAddr,
		PortalOrigin: cfg.PortalOrigin,
		CookieName:   cfg.CookieName,
		CookieSecure: cfg.CookieSecure,
	}, logger, client)

	if err := srv.Run(ctx); err != nil {
		logger.Error(ctx, "dashboard stopped", "error", err)
		os.Exit(1)
	}
}
