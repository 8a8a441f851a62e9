package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/cryptox"
	"github.com/dmitrijs2005/loggy/internal/dbx"
	"github.com/dmitrijs2005/loggy/internal/server/config"
	"github.com/dmitrijs2005/loggy/internal/server/models"
	"github.com/dmitrijs2005/loggy/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/loggy/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/loggy/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var testHasher = cryptox.NewHasher(cryptox.Params{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32})

func testConfig() *config.Config {
	return &config.Config{SecretKey: "k", SessionValidityDuration: time.Hour}
}

// --- users ---

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User

	createErr error
	findErr   error
	updated   map[string]string
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}, updated: map[string]string{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	u.ID = "u-" + u.Email
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[id] = hash
	return nil
}

// --- sessions ---

type fakeSessionsRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Session

	createErr error
	findErr   error
	purged    int64
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{rows: map[string]*models.Session{}}
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	s.CreatedAt = time.Now()
	f.rows[s.ID] = s
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	s, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeSessionsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, s := range f.rows {
		if s.ExpiresAt.Before(now) {
			delete(f.rows, id)
			n++
		}
	}
	f.purged += n
	return n, nil
}

func (f *fakeSessionsRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// --- jobs ---

type fakeJobsRepo struct {
	created    *models.Job
	createdFor string
	updated    *models.Job
	lastFilter jobs.ListFilter

	out *models.Job
	err error
}

func (f *fakeJobsRepo) Create(ctx context.Context, ownerID string, j *models.Job) (*models.Job, error) {
	f.created, f.createdFor = j, ownerID
	if f.err != nil {
		return nil, f.err
	}
	return j, nil
}

func (f *fakeJobsRepo) List(ctx context.Context, ownerID string, filter jobs.ListFilter) ([]*models.Job, error) {
	f.lastFilter = filter
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if f.out == nil {
		return []*models.Job{}, f.err
	}
	return []*models.Job{f.out}, f.err
}

func (f *fakeJobsRepo) Get(ctx context.Context, ownerID, id string) (*models.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func (f *fakeJobsRepo) Update(ctx context.Context, ownerID, id string, j *models.Job) (*models.Job, error) {
	f.updated = j
	if f.err != nil {
		return nil, f.err
	}
	return j, nil
}

func (f *fakeJobsRepo) Delete(ctx context.Context, ownerID, id string) error { return f.err }

func (f *fakeJobsRepo) CountByStatus(ctx context.Context, ownerID string) (map[string]int, error) {
	return map[string]int{"applied": 1}, f.err
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
	j *fakeJobsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessions.Repository     { return m.s }
func (m *fakeRepoManager) Jobs(db dbx.DBTX) jobs.Repository             { return m.j }
