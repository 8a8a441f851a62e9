// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/loggy/internal/cryptox"
	"github.com/dmitrijs2005/loggy/internal/logging"
	"github.com/dmitrijs2005/loggy/internal/server/config"
	"github.com/dmitrijs2005/loggy/internal/server/ratelimit"
	"github.com/dmitrijs2005/loggy/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/loggy/internal/server/rest"
	"github.com/dmitrijs2005/loggy/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

const insecureSecretKey = "secretKey"

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	rdb            *redis.Client
	userService    *services.UserService
	sessionService *services.SessionService
	jobService     *services.JobService
	limiter        ratelimit.Limiter
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if c.SecretKey == insecureSecretKey {
		logger.Warn(ctx, "using the default secret key; set LOGGY_SECRET_KEY in production")
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(c.MaxDBConns)
	db.SetMaxIdleConns(c.MaxDBConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	app.sessionService = services.NewSessionService(db, rm, c)
	app.userService = services.NewUserService(db, rm, cryptox.NewHasher(cryptox.DefaultParams), app.sessionService)
	app.jobService = services.NewJobService(db, rm)

	if c.RedisAddr != "" {
		app.rdb = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if _, err := app.rdb.Ping(ctx).Result(); err != nil {
			logger.Warn(ctx, "redis unreachable, rate limiting fails open until it recovers", "addr", c.RedisAddr, "error", err)
		}
		app.limiter = ratelimit.NewRedisLimiter(app.rdb, "ratelimit", c.AuthRateLimit, c.AuthRateWindow)
	} else {
		app.limiter = ratelimit.NewMemoryLimiter(c.AuthRateLimit, c.AuthRateWindow)
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewServer(rest.Options{
		Address:      app.config.EndpointAddr,
		CookieName:   app.config.CookieName,
		CookieSecure: app.config.CookieSecure,
		PortalOrigin: app.config.PortalOrigin,
		TrustProxy:   app.config.TrustProxy,
	}, app.logger, app.userService, app.sessionService, app.jobService, app.db, app.limiter)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.sessionService.RunPurger(ctx, app.config.SessionPurgeInterval, app.logger.With("module", "session_purger"))
	}()

	wg.Wait()

	app.close(ctx)
}

func (app *App) close(ctx context.Context) {
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Error(ctx, "redis close error", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
