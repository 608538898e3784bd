package dbx

// RowConvertibleEntity defines an interface for converting a struct into a row of values for bulk appends.
//
// The values returned by `ToRow()` must follow the column order of the target table.
//
// Example:
//
//	type Reading struct {
//	    Sensor string  `db:"sensor"`
//	    Value  float64 `db:"value"`
//	}
//
//	func (r Reading) ToRow() []interface{} {
//	    return []interface{}{r.Sensor, r.Value}
//	}
type RowConvertibleEntity interface {
	ToRow() []interface{}
}
