package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database operations the contact store needs. Both
// *sql.DB and *sql.Tx satisfy it, so the same store code runs standalone or
// inside a transaction handed down by a service.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
