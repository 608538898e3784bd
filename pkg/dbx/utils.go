package dbx

import (
	"reflect"
	"strings"

	"github.com/marcodd23/go-duckdb-core/pkg/errorx"
)

// SqlProtect doubles every single quote in the value so it can be interpolated inside a quoted SQL
// literal or identifier.
//
// This is a narrow mitigation, not an injection guarantee: only single quotes are handled and the
// function is not idempotent, so values must be escaped exactly once. Prefer bind arguments whenever
// the statement allows them.
func SqlProtect(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// FindReplace replaces every occurrence of any rune in chars with replaceWith.
func FindReplace(input string, chars string, replaceWith string) string {
	var sb strings.Builder
	sb.Grow(len(input))

	for _, r := range input {
		if strings.ContainsRune(chars, r) {
			sb.WriteString(replaceWith)
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// CleanIdentifier turns an arbitrary string into a usable table or column name by replacing
// spaces, parentheses and dashes with underscores.
func CleanIdentifier(name string) string {
	return FindReplace(name, " ()-", "_")
}

var sqlTypeLookup = map[string]string{
	// dataframe style names
	"object":  "text",
	"float64": "float",
	"int64":   "bigint",
	"bool":    "boolean",
	// go type names
	"string":  "text",
	"float32": "float",
	"int":     "bigint",
	"int8":    "bigint",
	"int16":   "bigint",
	"int32":   "bigint",
	"uint":    "bigint",
	"uint8":   "bigint",
	"uint16":  "bigint",
	"uint32":  "bigint",
	"uint64":  "bigint",
}

// SqlType maps a native column type name to one of text, float, bigint or boolean.
// Unknown names map to text.
func SqlType(nativeTypeName string) string {
	if t, ok := sqlTypeLookup[nativeTypeName]; ok {
		return t
	}

	return "text"
}

// ColumnDef is a column derived from a struct field: its tag name and the Go type name of the field.
type ColumnDef struct {
	Name       string
	NativeType string
}

// DeriveColumnNamesFromTags extracts column names from a struct's tags.
// It uses reflection over the fields of a struct and retrieves the tag values
// specified by `tagKey` (e.g., "db"). Only exported fields that contain a non-empty tag
// and are not marked with `"-"` will be included in the returned slice.
//
// Example:
//
//	type Example struct {
//	    ID   int    `db:"id"`
//	    Name string `db:"name"`
//	    Age  int    `db:"age"`
//	}
//	columns, _ := DeriveColumnNamesFromTags(Example{}, "db")
//	// columns would be: []string{"id", "name", "age"}
func DeriveColumnNamesFromTags[T any](entity T, tagKey string) ([]string, error) {
	defs, err := DeriveColumnsFromTags(entity, tagKey)
	if err != nil {
		return nil, err
	}

	columnNames := make([]string, len(defs))
	for i, d := range defs {
		columnNames[i] = d.Name
	}

	return columnNames, nil
}

// DeriveColumnsFromTags is DeriveColumnNamesFromTags plus the Go type name of each field,
// which SqlType turns into a column type.
func DeriveColumnsFromTags(entity any, tagKey string) ([]ColumnDef, error) {
	t := reflect.TypeOf(entity)
	if t == nil {
		return nil, errorx.NewGeneralError("expected a struct type, got nil")
	}

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, errorx.NewGeneralError("expected a struct type, got %s", t.Kind())
	}

	var defs []ColumnDef
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag := field.Tag.Get(tagKey)
		if tag == "" || tag == "-" || field.PkgPath != "" {
			continue
		}

		defs = append(defs, ColumnDef{Name: tag, NativeType: field.Type.String()})
	}

	return defs, nil
}

// StructsToRows converts a slice of structs to a [][]interface{} in tag order.
// This uses reflection to extract the values of each tagged, exported struct field.
func StructsToRows[T any](entities []T, tagKey string) ([][]interface{}, error) {
	var rows [][]interface{}

	for _, entity := range entities {
		var row []interface{}

		v := reflect.ValueOf(entity)
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}

		if v.Kind() != reflect.Struct {
			return nil, errorx.NewGeneralError("expected a struct type, got %s", v.Kind())
		}

		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)

			dbTag := field.Tag.Get(tagKey)
			if dbTag == "" || dbTag == "-" || field.PkgPath != "" {
				continue
			}

			row = append(row, v.Field(i).Interface())
		}

		rows = append(rows, row)
	}

	return rows, nil
}
