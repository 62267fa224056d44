// Package dbx holds the database plumbing shared by the repositories under
// internal/server/repositories: a minimal query interface (DBTX) satisfied by
// both *sql.DB and *sql.Tx, and WithTx, which lets a service span several
// repository calls with one transaction (registration writes the user and its
// first refresh token this way, role assignment replaces the role set).
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the repositories query through. A
// repository bound to a DBTX runs against a plain connection or inside a
// transaction without knowing which.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with the transactional handle, and
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// Typical use, with a repository manager vending repositories per handle:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    user, err := repos.Users(tx).Create(ctx, u)
//	    if err != nil {
//	        return err
//	    }
//	    return repos.RefreshTokens(tx).Create(ctx, user.ID, token, ttl)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
