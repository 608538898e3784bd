package dbx_test

import (
	"testing"
	"time"

	"github.com/marcodd23/go-duckdb-core/pkg/dbx"
	"github.com/stretchr/testify/assert"
)

func TestTabularResultAccessors(t *testing.T) {
	res := &dbx.TabularResult{
		Columns: []dbx.Column{{Name: "id", DatabaseType: "BIGINT"}, {Name: "name", DatabaseType: "VARCHAR"}},
		Rows:    [][]any{{int64(1), "a"}, {int64(2), "b"}},
	}

	assert.Equal(t, []string{"id", "name"}, res.ColumnNames())
	assert.Equal(t, 2, res.Len())

	names, ok := res.Column("name")
	assert.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, names)

	_, ok = res.Column("missing")
	assert.False(t, ok)
}

func TestStatementBatchKeepsOrder(t *testing.T) {
	batch := dbx.NewStatementBatch("CREATE TABLE t (a INTEGER)")
	batch.Queue("INSERT INTO t VALUES (?)", 1)

	assert.Equal(t, 2, batch.Len())
	assert.Equal(t, []dbx.QueuedStatement{
		{Query: "CREATE TABLE t (a INTEGER)", Arguments: nil},
		{Query: "INSERT INTO t VALUES (?)", Arguments: []any{1}},
	}, batch.GetBatch())
}

func TestConnConfigDefaults(t *testing.T) {
	cfg := dbx.ConnConfig{Target: dbx.InMemoryTarget}.WithDefaults()

	assert.True(t, cfg.IsInMemory())
	assert.Equal(t, 1, cfg.Threads)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.BackoffUnit)

	custom := dbx.ConnConfig{Target: "a.duckdb", Threads: 4, MaxAttempts: 5, BackoffUnit: time.Millisecond}.WithDefaults()
	assert.Equal(t, 4, custom.Threads)
	assert.Equal(t, 5, custom.MaxAttempts)
	assert.Equal(t, time.Millisecond, custom.BackoffUnit)
}
