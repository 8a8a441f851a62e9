// Package rest exposes the account, session and job services over HTTP/JSON.
package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/loggy/internal/logging"
	"github.com/dmitrijs2005/loggy/internal/server/models"
	"github.com/dmitrijs2005/loggy/internal/server/ratelimit"
	"github.com/dmitrijs2005/loggy/internal/server/services"
	"github.com/dmitrijs2005/loggy/internal/validation"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type AccountService interface {
	Signup(ctx context.Context, email, password string, meta services.SessionMeta) (*models.User, *services.IssuedSession, error)
	Login(ctx context.Context, email, password string, meta services.SessionMeta) (*models.User, *services.IssuedSession, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type SessionService interface {
	Authenticate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type JobService interface {
	Create(ctx context.Context, ownerID string, in validation.JobInput) (*models.Job, error)
	List(ctx context.Context, ownerID string, q validation.ListQuery) ([]*models.Job, error)
	Get(ctx context.Context, ownerID, id string) (*models.Job, error)
	Update(ctx context.Context, ownerID, id string, in validation.JobInput) (*models.Job, error)
	Delete(ctx context.Context, ownerID, id string) error
	Stats(ctx context.Context, ownerID string) (map[string]int, error)
}

// Pinger reports database reachability for the health check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	Address      string
	CookieName   string
	CookieSecure bool
	PortalOrigin string
	TrustProxy   bool
}

type Server struct {
	opts     Options
	accounts AccountService
	sessions SessionService
	jobs     JobService
	db       Pinger
	limiter  ratelimit.Limiter
	logger   logging.Logger
}

func NewServer(opts Options, l logging.Logger, as AccountService, ss SessionService, js JobService, db Pinger, lim ratelimit.Limiter) *Server {
	return &Server{
		opts:     opts,
		accounts: as,
		sessions: ss,
		jobs:     js,
		db:       db,
		limiter:  lim,
		logger:   l.With("module", "rest_server"),
	}
}

// Handler returns the router wrapped in the global middleware chain.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	r.Handle("/auth/signup", s.rateLimited("signup", http.HandlerFunc(s.signup))).Methods(http.MethodPost)
	r.Handle("/auth/login", s.rateLimited("login", http.HandlerFunc(s.login))).Methods(http.MethodPost)
	r.Handle("/auth/logout", s.private(s.logout)).Methods(http.MethodPost)
	r.Handle("/auth/me", s.private(s.me)).Methods(http.MethodGet)

	r.Handle("/jobs", s.private(s.listJobs)).Methods(http.MethodGet)
	r.Handle("/jobs", s.private(s.createJob)).Methods(http.MethodPost)
	// registered before /jobs/{id} so "stats" is not taken for an id
	r.Handle("/jobs/stats", s.private(s.jobStats)).Methods(http.MethodGet)
	r.Handle("/jobs/{id}", s.private(s.getJob)).Methods(http.MethodGet)
	r.Handle("/jobs/{id}", s.private(s.updateJob)).Methods(http.MethodPut)
	r.Handle("/jobs/{id}", s.private(s.deleteJob)).Methods(http.MethodDelete)

	var h http.Handler = r
	h = handlers.CompressHandler(h)
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{s.opts.PortalOrigin}),
		handlers.AllowCredentials(),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.CustomLoggingHandler(io.Discard, h, s.accessLog)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s.logger}))(h)
	if s.opts.TrustProxy {
		h = handlers.ProxyHeaders(h)
	}
	return s.withRequestID(h)
}

// private wraps fn in session authentication and the origin check.
func (s *Server) private(fn http.HandlerFunc) http.Handler {
	return s.authenticate(s.checkOrigin(fn))
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
