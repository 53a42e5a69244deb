// Package dbx holds the small database plumbing shared by all repositories:
// the DBTX interface that lets a repository run against either a plain
// connection or a transaction, and a transactional helper.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql the repositories need. It is satisfied
// by both *sql.DB and *sql.Tx, so the same repository code serves single
// statements and multi-write transactions.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx opens a transaction, runs fn against it, and commits when fn
// returns nil. A non-nil error or a panic rolls the transaction back;
// panics are rethrown after the rollback.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
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
