package dbx

import (
	"context"
	"database/sql"
)

// InstanceManager defines a contract for managing an exclusive connection to an embedded database and
// executing statements through it.
//
// Every method acquires a handle, runs its work and releases the handle before returning, on success
// and on failure alike. Callers never hold a raw handle, so the retry policy and the release guarantee
// live in a single place.
//
// Responsibilities of InstanceManager include:
//   - Acquiring the handle, retrying while the database file is locked by another process.
//   - Running side-effecting statements inside a transaction (Execute, ExecuteMany, ExecuteBatch).
//   - Running read-only statements and converting their result (Query) or exposing the driver rows (QueryRaw).
//   - Memoizing Query while the select cache is active.
type InstanceManager interface {
	Execute(ctx context.Context, statement string, args ...any) ([][]any, error)
	ExecuteMany(ctx context.Context, statements ...string) ([][]any, error)
	ExecuteBatch(ctx context.Context, batch Batch) ([][]any, error)
	Query(ctx context.Context, query string, args ...any) (*TabularResult, error)
	QueryRaw(ctx context.Context, query string, processRows func(rows *sql.Rows) error, args ...any) error
	ActivateSelectCache()
	DeactivateSelectCache()
	IsSelectCacheActive() bool
	GetConnectionConfig() ConnConfig
	Close() error
}
