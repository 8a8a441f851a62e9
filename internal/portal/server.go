// Package portal serves the browser dashboard. It renders HTML on the
// server and talks to the API on the user's behalf: the browser only ever
// holds the portal's own session cookie, whose value is forwarded to the
// API with every call.
package portal

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/loggy/internal/client/api"
	"github.com/dmitrijs2005/loggy/internal/logging"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// API is the subset of the API client the dashboard uses.
type API interface {
	Signup(ctx context.Context, email, password string) (*api.User, *api.Session, error)
	Login(ctx context.Context, email, password string) (*api.User, *api.Session, error)
	Logout(ctx context.Context, session string) error
	Me(ctx context.Context, session string) (*api.User, error)
	ListJobs(ctx context.Context, session string, p api.ListParams) ([]api.Job, error)
	JobStats(ctx context.Context, session string) (api.Stats, error)
	GetJob(ctx context.Context, session, id string) (*api.Job, error)
	CreateJob(ctx context.Context, session string, in api.JobInput) (*api.Job, error)
	UpdateJob(ctx context.Context, session, id string, in api.JobInput) (*api.Job, error)
	DeleteJob(ctx context.Context, session, id string) error
}

type Options struct {
	Address      string
	PortalOrigin string
	CookieName   string
	CookieSecure bool
}

type Server struct {
	opts   Options
	api    API
	pages  *pages
	logger logging.Logger
}

func NewServer(opts Options, l logging.Logger, a API) *Server {
	return &Server{
		opts:   opts,
		api:    a,
		pages:  mustParsePages(),
		logger: l.With("module", "portal"),
	}
}

// Handler returns the dashboard routes wrapped in logging, recovery and
// compression.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "Page not found")
	})

	r.HandleFunc("/login", s.loginPage).Methods(http.MethodGet)
	r.Handle("/login", s.sameOrigin(s.login)).Methods(http.MethodPost)
	r.HandleFunc("/signup", s.signupPage).Methods(http.MethodGet)
	r.Handle("/signup", s.sameOrigin(s.signup)).Methods(http.MethodPost)
	r.Handle("/logout", s.sameOrigin(s.logout)).Methods(http.MethodPost)

	r.Handle("/", s.requireSession(s.dashboard)).Methods(http.MethodGet)
	r.Handle("/jobs", s.sameOrigin(s.requireSession(s.createJob))).Methods(http.MethodPost)
	r.Handle("/jobs/{id}", s.sameOrigin(s.requireSession(s.updateJob))).Methods(http.MethodPost)
	r.Handle("/jobs/{id}/delete", s.sameOrigin(s.requireSession(s.deleteJob))).Methods(http.MethodPost)

	var h http.Handler = r
	h = handlers.CompressHandler(h)
	h = handlers.CustomLoggingHandler(io.Discard, h, s.accessLog)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s.logger}))(h)
	return withClientIP(h)
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping dashboard...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting dashboard", "address", s.opts.Address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
