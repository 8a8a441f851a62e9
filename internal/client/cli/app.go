package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/loggy/internal/client/api"
	"github.com/dmitrijs2005/loggy/internal/client/config"
)

// apiClient is the part of api.Client the terminal client uses.
type apiClient interface {
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

type App struct {
	config  *config.Config
	api     apiClient
	store   *sessionStore
	reader  *bufio.Reader
	out     io.Writer
	session string
	email   string
}

func NewApp(c *config.Config) (*App, error) {
	store, err := newSessionStore(c.SessionDir)
	if err != nil {
		return nil, err
	}

	client := api.New(c.APIBaseURL, c.Origin, c.CookieName, c.RequestTimeout)

	return &App{
		config: c,
		api:    client,
		store:  store,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session != ""
}

// Run restores a saved session, if it is still accepted by the API, and
// starts the REPL.
func (a *App) Run(ctx context.Context) {
	a.restoreSession(ctx)

	printlnFn("Welcome to Loggy CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

func (a *App) status() string {
	if a.email == "" {
		return "(guest)"
	}
	return "(" + a.email + ")"
}

func (a *App) restoreSession(ctx context.Context) {
	token, err := a.store.Load()
	if err != nil || token == "" {
		return
	}

	u, err := a.api.Me(ctx, token)
	if err != nil {
		if api.IsUnauthorized(err) {
			_ = a.store.Clear()
		} else {
			log.Printf("could not restore session: %v", err)
		}
		return
	}

	a.session = token
	a.email = u.Email
}
