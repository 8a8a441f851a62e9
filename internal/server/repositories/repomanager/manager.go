package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/loggy/internal/dbx"
	"github.com/dmitrijs2005/loggy/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/loggy/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/loggy/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// several of them inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Jobs(db dbx.DBTX) jobs.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
