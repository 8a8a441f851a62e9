package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/logging"
	"github.com/dmitrijs2005/loggy/internal/server/models"
	"github.com/dmitrijs2005/loggy/internal/server/services"
	"github.com/dmitrijs2005/loggy/internal/validation"
)

const (
	testOrigin = "http://portal.test"
	testCookie = "loggy.auth"
	goodToken  = "good-token"
	testUserID = "11111111-1111-1111-1111-111111111111"
)

var errBoom = errors.New("boom")

type fakeAccounts struct {
	signupErr error
	loginErr  error
	meErr     error
	gotEmail  string
	gotMeta   services.SessionMeta
}

func (f *fakeAccounts) issue(email string, meta services.SessionMeta) (*models.User, *services.IssuedSession) {
	f.gotEmail = email
	f.gotMeta = meta
	return &models.User{ID: testUserID, Email: strings.ToLower(strings.TrimSpace(email))},
		&services.IssuedSession{Token: goodToken, ExpiresAt: time.Now().Add(time.Hour)}
}

func (f *fakeAccounts) Signup(_ context.Context, email, _ string, meta services.SessionMeta) (*models.User, *services.IssuedSession, error) {
	if f.signupErr != nil {
		return nil, nil, f.signupErr
	}
	u, s := f.issue(email, meta)
	return u, s, nil
}

func (f *fakeAccounts) Login(_ context.Context, email, _ string, meta services.SessionMeta) (*models.User, *services.IssuedSession, error) {
	if f.loginErr != nil {
		return nil, nil, f.loginErr
	}
	u, s := f.issue(email, meta)
	return u, s, nil
}

func (f *fakeAccounts) Me(_ context.Context, userID string) (*models.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return &models.User{ID: userID, Email: "user@test.com"}, nil
}

type fakeSessions struct {
	authErr error
	revoked []string
}

func (f *fakeSessions) Authenticate(_ context.Context, token string) (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	if token != goodToken {
		return "", common.ErrorUnauthorized
	}
	return testUserID, nil
}

func (f *fakeSessions) Revoke(_ context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	return nil
}

type fakeJobs struct {
	jobs      map[string]*models.Job
	lastQuery validation.ListQuery
	lastOwner string
	listErr   error
	panicOn   string
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{jobs: map[string]*models.Job{}}
}

func (f *fakeJobs) Create(_ context.Context, ownerID string, in validation.JobInput) (*models.Job, error) {
	n, errs := validation.ValidateJob(in)
	if errs != nil {
		return nil, errs
	}
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	j := &models.Job{
		ID: "22222222-2222-2222-2222-222222222222", UserID: ownerID,
		Title: n.Title, Company: n.Company, Status: n.Status, Relevance: n.Relevance,
		ApplicationSource: n.ApplicationSource, URL: n.URL, Notes: n.Notes,
		CreatedAt: now, UpdatedAt: now,
	}
	f.jobs[j.ID] = j
	return j, nil
}

func (f *fakeJobs) List(_ context.Context, ownerID string, q validation.ListQuery) ([]*models.Job, error) {
	f.lastQuery = q
	f.lastOwner = ownerID
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Job{}
	for _, j := range f.jobs {
		if j.UserID == ownerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobs) Get(_ context.Context, ownerID, id string) (*models.Job, error) {
	j, ok := f.jobs[id]
	if !ok || j.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return j, nil
}

func (f *fakeJobs) Update(ctx context.Context, ownerID, id string, in validation.JobInput) (*models.Job, error) {
	n, errs := validation.ValidateJob(in)
	if errs != nil {
		return nil, errs
	}
	j, err := f.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	j.Title, j.Company, j.Status, j.Relevance = n.Title, n.Company, n.Status, n.Relevance
	return j, nil
}

func (f *fakeJobs) Delete(_ context.Context, ownerID, id string) error {
	j, ok := f.jobs[id]
	if !ok || j.UserID != ownerID {
		return common.ErrorNotFound
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobs) Stats(context.Context, string) (map[string]int, error) {
	if f.panicOn == "stats" {
		panic("stats exploded")
	}
	return map[string]int{"wishlist": 1, "applied": 0, "interview": 0, "rejected": 0, "offer": 0}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type fakeLimiter struct {
	allowed bool
	retry   time.Duration
	err     error
	keys    []string
}

func (l *fakeLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.retry, l.err
}

type harness struct {
	accounts *fakeAccounts
	sessions *fakeSessions
	jobs     *fakeJobs
	pinger   *fakePinger
	limiter  *fakeLimiter
	handler  http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		accounts: &fakeAccounts{},
		sessions: &fakeSessions{},
		jobs:     newFakeJobs(),
		pinger:   &fakePinger{},
		limiter:  &fakeLimiter{allowed: true},
	}
	s := NewServer(Options{
		Address:      ":0",
		CookieName:   testCookie,
		PortalOrigin: testOrigin,
	}, logging.Nop{}, h.accounts, h.sessions, h.jobs, h.pinger, h.limiter)
	h.handler = s.Handler()
	return h
}

// do sends a request; authed requests carry the session cookie and mutating
// ones the portal origin.
func (h *harness) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: goodToken})
		if method != http.MethodGet {
			req.Header.Set("Origin", testOrigin)
		}
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}
