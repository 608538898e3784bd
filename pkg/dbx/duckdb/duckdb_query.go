package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/marcodd23/go-duckdb-core/pkg/dbx"
	"github.com/marcodd23/go-duckdb-core/pkg/errorx"
)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Execute runs a single statement inside a transaction, commits it and returns every resulting row.
//
// Example Usage:
//
//	rows, err := mgr.Execute(ctx, "INSERT INTO users VALUES (?, ?) RETURNING id", "John", "john@example.com")
func (m *DuckDB) Execute(ctx context.Context, statement string, args ...any) ([][]any, error) {
	batch := dbx.NewStatementBatch()
	batch.Queue(statement, args...)

	return m.ExecuteBatch(ctx, batch)
}

// ExecuteMany runs the statements in order through one handle and one transaction.
// The rows of the last statement are returned.
func (m *DuckDB) ExecuteMany(ctx context.Context, statements ...string) ([][]any, error) {
	return m.ExecuteBatch(ctx, dbx.NewStatementBatch(statements...))
}

// ExecuteBatch runs every queued statement in order through one handle and one transaction,
// committing once at the end.
//
// Behavior:
//   - The first failing statement rolls the transaction back; the remaining statements are not run.
//   - The error is returned as *errorx.StatementError after the handle has been released.
//   - The rows produced by the last statement are returned.
//   - An empty batch returns no rows without touching the database.
func (m *DuckDB) ExecuteBatch(ctx context.Context, batch dbx.Batch) ([][]any, error) {
	statements, ok := batch.GetBatch().([]dbx.QueuedStatement)
	if !ok {
		return nil, errorx.NewDatabaseError("unsupported batch type %T", batch.GetBatch())
	}

	if len(statements) == 0 {
		return nil, nil
	}

	var result [][]any

	err := m.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return errorx.NewDatabaseErrorWrapper(err, "error starting transaction")
		}

		last := len(statements) - 1
		for _, stmt := range statements[:last] {
			if _, err := tx.ExecContext(ctx, stmt.Query, stmt.Arguments...); err != nil {
				m.rollback(ctx, tx)
				return m.statementError(ctx, err, stmt.Query)
			}
		}

		_, rows, err := fetchAll(ctx, tx, statements[last].Query, statements[last].Arguments...)
		if err != nil {
			m.rollback(ctx, tx)
			return m.statementError(ctx, err, statements[last].Query)
		}

		if err := tx.Commit(); err != nil {
			return errorx.NewDatabaseErrorWrapper(err, "error during transaction commit")
		}

		result = rows

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Query runs a read-only statement and converts the result to a dbx.TabularResult.
// While the select cache is active, identical calls are served from memory.
func (m *DuckDB) Query(ctx context.Context, query string, args ...any) (*dbx.TabularResult, error) {
	if cache := m.activeCache(); cache != nil {
		return m.cachedQuery(ctx, cache, query, args)
	}

	return m.query(ctx, query, args...)
}

func (m *DuckDB) query(ctx context.Context, query string, args ...any) (*dbx.TabularResult, error) {
	var result *dbx.TabularResult

	err := m.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		columns, rows, err := fetchAll(ctx, conn, query, args...)
		if err != nil {
			return errorx.NewStatementError(err, query)
		}

		result = &dbx.TabularResult{Columns: columns, Rows: rows}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// QueryRaw runs a read-only statement and hands the driver rows to processRows.
//
// The rows are only valid inside processRows: they are closed, and the handle released, as soon as it
// returns. Errors returned by processRows are passed through unchanged.
//
// Example Usage:
//
//	err := mgr.QueryRaw(ctx, "SELECT id, payload FROM events", func(rows *sql.Rows) error {
//	    for rows.Next() {
//	        var id int64
//	        var payload map[string]any
//	        if err := rows.Scan(&id, &payload); err != nil {
//	            return err
//	        }
//	    }
//	    return nil
//	})
func (m *DuckDB) QueryRaw(ctx context.Context, query string, processRows func(rows *sql.Rows) error, args ...any) error {
	return m.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return errorx.NewStatementError(err, query)
		}
		defer rows.Close()

		if err := processRows(rows); err != nil {
			return err
		}

		if err := rows.Err(); err != nil {
			return errorx.NewStatementError(err, query)
		}

		return nil
	})
}

func (m *DuckDB) rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		m.logger.LogError(ctx, "error rolling back transaction", err)
	}
}

func (m *DuckDB) statementError(ctx context.Context, err error, statement string) error {
	m.logger.LogError(ctx, fmt.Sprintf("Error executing statement '%s'", statement), err)

	return errorx.NewStatementError(err, statement)
}

// fetchAll runs the query and reads every row, closing the rows before returning.
func fetchAll(ctx context.Context, q queryer, query string, args ...any) ([]dbx.Column, [][]any, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, err
	}

	columns := make([]dbx.Column, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = dbx.Column{Name: ct.Name(), DatabaseType: ct.DatabaseTypeName()}
	}

	result := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}

		result = append(result, values)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return columns, result, nil
}
