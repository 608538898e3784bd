package dbx

// Column describes one column of a tabular result.
type Column struct {
	Name         string
	DatabaseType string
}

// TabularResult is the engine-independent result of a read query: typed columns plus rows of values
// in column order.
type TabularResult struct {
	Columns []Column
	Rows    [][]any
}

// ColumnNames returns the column names in result order.
func (r *TabularResult) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}

	return names
}

// Len returns the number of rows.
func (r *TabularResult) Len() int {
	return len(r.Rows)
}

// Column returns the values of the named column, false if there is no such column.
func (r *TabularResult) Column(name string) ([]any, bool) {
	idx := -1
	for i, c := range r.Columns {
		if c.Name == name {
			idx = i
			break
		}
	}

	if idx < 0 {
		return nil, false
	}

	values := make([]any, len(r.Rows))
	for i, row := range r.Rows {
		values[i] = row[idx]
	}

	return values, true
}
