package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	duckdbdriver "github.com/duckdb/duckdb-go/v2"
	"github.com/marcodd23/go-duckdb-core/pkg/dbx"
	"github.com/marcodd23/go-duckdb-core/pkg/errorx"
	"github.com/pkg/errors"
)

const tagKey = "db"

// CreateTableFrom creates an empty table whose columns mirror the `db`-tagged fields of entity.
// Field types are mapped with dbx.SqlType; the table and column names go through
// dbx.CleanIdentifier and are double quoted, so the same name works with AppendEntities.
//
// Example:
//
//	type Sale struct {
//	    Region string  `db:"region"`
//	    Amount float64 `db:"amount"`
//	}
//	_, err := mgr.CreateTableFrom(ctx, Sale{}, "sales")
//	// CREATE TABLE "sales" ("region" text, "amount" float)
func (m *DuckDB) CreateTableFrom(ctx context.Context, entity any, table string) ([][]any, error) {
	columns, err := dbx.DeriveColumnsFromTags(entity, tagKey)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	stmt, err := dbx.BuildCreateTable(table, columns)
	if err != nil {
		return nil, err
	}

	m.logger.LogDebug(ctx, stmt)

	return m.Execute(ctx, stmt)
}

// AppendFrom inserts every row of the source relation into an existing table.
// The reserved name dbx.ReservedSourceName is rejected with a MisuseError before anything runs.
func (m *DuckDB) AppendFrom(ctx context.Context, source string, table string) ([][]any, error) {
	stmt, err := dbx.BuildInsertSelect(source, table)
	if err != nil {
		return nil, err
	}

	return m.Execute(ctx, stmt)
}

// AppendEntities bulk-loads the entities into an existing table through the DuckDB appender.
// Each ToRow must follow the table's column order.
func (m *DuckDB) AppendEntities(ctx context.Context, table string, entities ...dbx.RowConvertibleEntity) error {
	rows := make([][]any, len(entities))
	for i, e := range entities {
		rows[i] = e.ToRow()
	}

	return m.appendRows(ctx, table, rows)
}

// AppendStructs bulk-loads a slice of `db`-tagged structs into an existing table, in tag order.
func AppendStructs[T any](ctx context.Context, m *DuckDB, table string, entities []T) error {
	rows, err := dbx.StructsToRows(entities, tagKey)
	if err != nil {
		return errors.WithStack(err)
	}

	return m.appendRows(ctx, table, rows)
}

func (m *DuckDB) appendRows(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	appendStmt := fmt.Sprintf("APPEND INTO %s", table)

	return m.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		return conn.Raw(func(driverConn any) error {
			dc, ok := driverConn.(driver.Conn)
			if !ok {
				return errorx.NewDatabaseError("unexpected driver connection %T", driverConn)
			}

			appender, err := duckdbdriver.NewAppenderFromConn(dc, "", table)
			if err != nil {
				return errorx.NewStatementError(err, appendStmt)
			}

			for _, row := range rows {
				values := make([]driver.Value, len(row))
				for i, v := range row {
					values[i] = v
				}

				if err := appender.AppendRow(values...); err != nil {
					_ = appender.Close()
					return errorx.NewStatementError(err, appendStmt)
				}
			}

			if err := appender.Close(); err != nil {
				return errorx.NewStatementError(err, appendStmt)
			}

			m.logger.LogDebug(ctx, fmt.Sprintf("Appended %d rows into %s", len(rows), table))

			return nil
		})
	})
}

// GetLayout returns the columns of every table in the database, keyed by table name.
func (m *DuckDB) GetLayout(ctx context.Context) (map[string][]dbx.Column, error) {
	layout := make(map[string][]dbx.Column)

	err := m.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		_, tables, err := fetchAll(ctx, conn, "PRAGMA show_tables")
		if err != nil {
			return errorx.NewStatementError(err, "PRAGMA show_tables")
		}

		for _, row := range tables {
			table := fmt.Sprint(row[0])
			pragma := dbx.BuildTableInfo(table)

			infoColumns, info, err := fetchAll(ctx, conn, pragma)
			if err != nil {
				return errorx.NewStatementError(err, pragma)
			}

			infoResult := dbx.TabularResult{Columns: infoColumns, Rows: info}
			names, _ := infoResult.Column("name")
			types, _ := infoResult.Column("type")

			columns := make([]dbx.Column, len(names))
			for i := range names {
				columns[i] = dbx.Column{Name: fmt.Sprint(names[i]), DatabaseType: fmt.Sprint(types[i])}
			}

			layout[table] = columns
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return layout, nil
}
