package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/loggy/internal/client/api"
	"github.com/dmitrijs2005/loggy/internal/logging"
)

const (
	testOrigin  = "http://portal.test"
	testCookie  = "loggy.auth"
	testSession = "tok"
)

type fakeAPI struct {
	mu sync.Mutex

	loginErr  error
	signupErr error
	logoutErr error
	meErr     error
	listErr   error
	getErr    error
	writeErr  error

	jobs []api.Job

	calls      []string
	listParams api.ListParams
	lastInput  api.JobInput
	lastID     string
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeAPI) session() *api.Session {
	return &api.Session{Token: testSession, ExpiresAt: time.Now().Add(time.Hour)}
}

func (f *fakeAPI) Signup(_ context.Context, email, _ string) (*api.User, *api.Session, error) {
	f.record("signup")
	if f.signupErr != nil {
		return nil, nil, f.signupErr
	}
	return &api.User{ID: "u1", Email: email}, f.session(), nil
}

func (f *fakeAPI) Login(_ context.Context, email, _ string) (*api.User, *api.Session, error) {
	f.record("login")
	if f.loginErr != nil {
		return nil, nil, f.loginErr
	}
	return &api.User{ID: "u1", Email: email}, f.session(), nil
}

func (f *fakeAPI) Logout(context.Context, string) error {
	f.record("logout")
	return f.logoutErr
}

func (f *fakeAPI) Me(context.Context, string) (*api.User, error) {
	f.record("me")
	if f.meErr != nil {
		return nil, f.meErr
	}
	return &api.User{ID: "u1", Email: "ada@example.com"}, nil
}

func (f *fakeAPI) ListJobs(_ context.Context, _ string, p api.ListParams) ([]api.Job, error) {
	f.record("list")
	f.mu.Lock()
	f.listParams = p
	f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.jobs, nil
}

func (f *fakeAPI) JobStats(context.Context, string) (api.Stats, error) {
	f.record("stats")
	return api.Stats{"wishlist": 4, "applied": 2, "interview": 0, "rejected": 1, "offer": 0}, nil
}

func (f *fakeAPI) GetJob(_ context.Context, _ string, id string) (*api.Job, error) {
	f.record("get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, j := range f.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, &api.Error{Status: http.StatusNotFound, Message: "Not found"}
}

func (f *fakeAPI) CreateJob(_ context.Context, _ string, in api.JobInput) (*api.Job, error) {
	f.record("create")
	f.lastInput = in
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &api.Job{ID: "j-new", Title: in.Title}, nil
}

func (f *fakeAPI) UpdateJob(_ context.Context, _ string, id string, in api.JobInput) (*api.Job, error) {
	f.record("update")
	f.lastID, f.lastInput = id, in
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &api.Job{ID: id, Title: in.Title}, nil
}

func (f *fakeAPI) DeleteJob(_ context.Context, _ string, id string) error {
	f.record("delete")
	f.lastID = id
	return f.writeErr
}

type harness struct {
	t   *testing.T
	api *fakeAPI
	h   http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	f := &fakeAPI{}
	s := NewServer(Options{
		Address:      "127.0.0.1:0",
		PortalOrigin: testOrigin,
		CookieName:   testCookie,
	}, logging.Nop{}, f)
	return &harness{t: t, api: f, h: s.Handler()}
}

// do sends one request. Form posts carry the dashboard origin.
func (h *harness) do(method, target string, form url.Values, authed bool) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if method == http.MethodPost {
		req.Header.Set("Origin", testOrigin)
	}
	if authed {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: testSession})
	}
	rr := httptest.NewRecorder()
	h.h.ServeHTTP(rr, req)
	return rr
}

func cookieFrom(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
