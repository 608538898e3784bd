package dbx_test

import (
	"testing"
	"time"

	"github.com/marcodd23/go-duckdb-core/pkg/dbx"
	"github.com/marcodd23/go-duckdb-core/pkg/errorx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Define a struct matching a sensor readings table
type TestStruct struct {
	SensorID int64     `db:"sensor_id"`
	Location string    `db:"location"`
	Reading  float64   `db:"reading"`
	IsActive bool      `db:"is_active"`
	ReadAt   time.Time `db:"read_at"`
	Notes    []string  `db:"-"`
	internal string    `db:"internal"`
	Untagged string
}

func TestDeriveColumnNamesFromTags(t *testing.T) {
	columns, err := dbx.DeriveColumnNamesFromTags(TestStruct{}, "db")
	require.NoError(t, err)

	assert.Equal(t, []string{"sensor_id", "location", "reading", "is_active", "read_at"}, columns)
}

func TestDeriveColumnsFromTagsKeepsGoTypes(t *testing.T) {
	defs, err := dbx.DeriveColumnsFromTags(&TestStruct{}, "db")
	require.NoError(t, err)

	assert.Equal(t, []dbx.ColumnDef{
		{Name: "sensor_id", NativeType: "int64"},
		{Name: "location", NativeType: "string"},
		{Name: "reading", NativeType: "float64"},
		{Name: "is_active", NativeType: "bool"},
		{Name: "read_at", NativeType: "time.Time"},
	}, defs)
}

func TestDeriveColumnsFromTagsRejectsNonStruct(t *testing.T) {
	_, err := dbx.DeriveColumnsFromTags(42, "db")
	var generalErr *errorx.GeneralError
	require.True(t, errors.As(err, &generalErr))
	assert.Equal(t, "expected a struct type, got int", err.Error())

	_, err = dbx.DeriveColumnsFromTags(nil, "db")
	assert.Error(t, err)
}

func TestStructsToRowsRejectsNonStruct(t *testing.T) {
	_, err := dbx.StructsToRows([]string{"a"}, "db")

	var generalErr *errorx.GeneralError
	assert.True(t, errors.As(err, &generalErr))
}

func TestStructsToRows(t *testing.T) {
	now := time.Now()
	testData := []TestStruct{
		{SensorID: 1, Location: "roof", Reading: 21.5, IsActive: true, ReadAt: now, Notes: []string{"x"}},
		{SensorID: 2, Location: "cellar", Reading: 12.25, IsActive: false, ReadAt: now},
	}

	rows, err := dbx.StructsToRows(testData, "db")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Len(t, rows[0], 5)
	assert.Equal(t, []interface{}{int64(1), "roof", 21.5, true, now}, rows[0])
	assert.Equal(t, []interface{}{int64(2), "cellar", 12.25, false, now}, rows[1])
}

func TestSqlProtectDoublesQuotes(t *testing.T) {
	assert.Equal(t, "O''Brien", dbx.SqlProtect("O'Brien"))
	assert.Equal(t, "''''", dbx.SqlProtect("''"))
	assert.Equal(t, "plain", dbx.SqlProtect("plain"))
	// not idempotent: escaping twice doubles again
	assert.Equal(t, "O''''Brien", dbx.SqlProtect(dbx.SqlProtect("O'Brien")))
}

func TestCleanIdentifier(t *testing.T) {
	assert.Equal(t, "total_sales__gbp_", dbx.CleanIdentifier("total sales (gbp)"))
	assert.Equal(t, "year_on_year", dbx.CleanIdentifier("year-on-year"))
	assert.Equal(t, "naïve_name", dbx.CleanIdentifier("naïve name"))
}

func TestSqlType(t *testing.T) {
	cases := map[string]string{
		"object":    "text",
		"string":    "text",
		"float64":   "float",
		"float32":   "float",
		"int64":     "bigint",
		"int":       "bigint",
		"uint16":    "bigint",
		"bool":      "boolean",
		"time.Time": "text",
		"":          "text",
	}

	for native, expected := range cases {
		assert.Equal(t, expected, dbx.SqlType(native), native)
	}
}
