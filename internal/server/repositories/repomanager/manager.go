package repomanager

import (
	"context"
	"database/sql"

	"github.com/dvolkov8/eventide/internal/dbx"
	"github.com/dvolkov8/eventide/internal/server/repositories/events"
	"github.com/dvolkov8/eventide/internal/server/repositories/refreshtokens"
	"github.com/dvolkov8/eventide/internal/server/repositories/roles"
	"github.com/dvolkov8/eventide/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can run the same repository against a plain connection or inside a
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Roles(db dbx.DBTX) roles.Repository
	Events(db dbx.DBTX) events.Repository
}
