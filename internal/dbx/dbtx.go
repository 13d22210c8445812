// Package dbx provides the small database abstractions shared by
// repositories: the DBTX interface implemented by both *sql.DB and *sql.Tx,
// the supported SQL dialects, and Open, which turns a connection descriptor
// into a ready *sql.DB.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
