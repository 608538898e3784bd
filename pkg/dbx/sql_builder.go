package dbx

import (
	"fmt"
	"strings"

	"github.com/marcodd23/go-duckdb-core/pkg/errorx"
)

// ReservedSourceName cannot be used as the source relation of BuildInsertSelect.
const ReservedSourceName = "_df_"

// BuildCreateTable generates a CREATE TABLE statement for the given columns.
// The table and column names are cleaned with CleanIdentifier and double quoted, so a name
// such as o'brien is created as written and can be reused by the appender; column types
// come from SqlType.
func BuildCreateTable(table string, columns []ColumnDef) (string, error) {
	if table == "" {
		return "", errorx.NewMisuseError(table, "table name is empty")
	}

	if len(columns) == 0 {
		return "", errorx.NewMisuseError(table, "a table needs at least one column")
	}

	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = fmt.Sprintf("%s %s", quoteIdentifier(c.Name), SqlType(c.NativeType))
	}

	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdentifier(table), strings.Join(defs, ", ")), nil
}

// BuildInsertSelect generates the statement appending every row of source into table.
// source names a relation visible to the engine (table, view or registered scan).
func BuildInsertSelect(source string, table string) (string, error) {
	if source == ReservedSourceName {
		return "", errorx.NewMisuseError(source, "'%s' is reserved and cannot be used as a source", ReservedSourceName)
	}

	if source == "" || table == "" {
		return "", errorx.NewMisuseError(source+table, "source and table names are required")
	}

	return fmt.Sprintf(`INSERT INTO %s SELECT * FROM %s`, quoteIdentifier(table), SqlProtect(source)), nil
}

// BuildTableInfo generates the PRAGMA listing the columns of a table.
func BuildTableInfo(table string) string {
	return fmt.Sprintf("PRAGMA table_info('%s')", SqlProtect(table))
}

// quoteIdentifier wraps name in double quotes. Inside a quoted identifier only '"' needs
// doubling; single quotes are literal there.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(CleanIdentifier(name), `"`, `""`) + `"`
}
