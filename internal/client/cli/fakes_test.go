package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/loggy/internal/client/api"
)

type fakeAPI struct {
	user    *api.User
	session *api.Session

	signupErr, loginErr, logoutErr, meErr error
	listErr, mutateErr                    error

	jobs        []api.Job
	stats       api.Stats
	gotEmail    string
	gotPassword string
	gotParams   api.ListParams
	gotSession  string
	created     *api.JobInput
	updated     *api.JobInput
	deleted     string
	logouts     int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		user:    &api.User{ID: "u1", Email: "user@test.com"},
		session: &api.Session{Token: "tok"},
	}
}

func (f *fakeAPI) Signup(_ context.Context, email, password string) (*api.User, *api.Session, error) {
	f.gotEmail, f.gotPassword = email, password
	if f.signupErr != nil {
		return nil, nil, f.signupErr
	}
	return f.user, f.session, nil
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*api.User, *api.Session, error) {
	f.gotEmail, f.gotPassword = email, password
	if f.loginErr != nil {
		return nil, nil, f.loginErr
	}
	return f.user, f.session, nil
}

func (f *fakeAPI) Logout(_ context.Context, session string) error {
	f.gotSession = session
	f.logouts++
	return f.logoutErr
}

func (f *fakeAPI) Me(_ context.Context, session string) (*api.User, error) {
	f.gotSession = session
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.user, nil
}

func (f *fakeAPI) ListJobs(_ context.Context, session string, p api.ListParams) ([]api.Job, error) {
	f.gotSession, f.gotParams = session, p
	return f.jobs, f.listErr
}

func (f *fakeAPI) JobStats(_ context.Context, session string) (api.Stats, error) {
	f.gotSession = session
	return f.stats, f.listErr
}

func (f *fakeAPI) GetJob(_ context.Context, _, id string) (*api.Job, error) {
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			return &f.jobs[i], nil
		}
	}
	return nil, &api.Error{Status: 404, Message: "Not found"}
}

func (f *fakeAPI) CreateJob(_ context.Context, _ string, in api.JobInput) (*api.Job, error) {
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	f.created = &in
	return &api.Job{ID: "j-new", Title: in.Title}, nil
}

func (f *fakeAPI) UpdateJob(_ context.Context, _, id string, in api.JobInput) (*api.Job, error) {
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	f.updated = &in
	return &api.Job{ID: id, Title: in.Title}, nil
}

func (f *fakeAPI) DeleteJob(_ context.Context, _, id string) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.deleted = id
	return nil
}

// newTestApp returns an App backed by f with a session file in a temp dir.
func newTestApp(t *testing.T, f *fakeAPI) *App {
	t.Helper()
	return &App{
		api:    f,
		store:  &sessionStore{path: filepath.Join(t.TempDir(), sessionFileName)},
		reader: bufio.NewReader(strings.NewReader("")),
		out:    io.Discard,
	}
}

// captureOutput silences printlnFn and returns what was printed.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func printed(lines *[]string, s string) bool {
	for _, l := range *lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// stubAnswers feeds answers to getSimpleText in order, then returns "".
func stubAnswers(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", nil
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func stubNotes(t *testing.T, notes string) {
	t.Helper()
	orig := getMultiline
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return notes, nil }
	t.Cleanup(func() { getMultiline = orig })
}
