package types

import (
	"fmt"
	"reflect"
)

// ValueKind identifies the shape of a Value.
type ValueKind int

const (
	ScalarValue ValueKind = iota // a single bind value
	RowValue                     // one row: (?, ?, ...)
	RowsValue                    // several rows: ((?, ?), (?, ?))
)

// Value is the right-hand side of a comparison: a scalar, one row or a list
// of rows. Construct it with ValueOf, which applies the unwrap rules.
type Value struct {
	scalar any
	row    []any
	rows   [][]any
	kind   ValueKind
}

// ValueOf normalizes an arbitrary Go value into a Value.
//
// Slices and arrays (other than byte slices) are lists. A one-element list is
// unwrapped to its element. A list containing at least one list is a list of
// rows; any other list is a single row. Nil entries inside rows become empty
// strings; a nil scalar stays nil.
func ValueOf(v any) Value {
	if val, ok := v.(Value); ok {
		return val
	}
	list, ok := ListOf(v)
	if !ok {
		return Value{kind: ScalarValue, scalar: v}
	}
	if len(list) == 1 {
		return ValueOf(list[0])
	}

	nested := false
	for _, item := range list {
		if _, ok := ListOf(item); ok {
			nested = true
			break
		}
	}
	if !nested {
		return Value{kind: RowValue, row: normalizeRow(list)}
	}

	rows := make([][]any, len(list))
	for i, item := range list {
		if sub, ok := ListOf(item); ok {
			rows[i] = normalizeRow(sub)
		} else {
			rows[i] = normalizeRow([]any{item})
		}
	}
	return Value{kind: RowsValue, rows: rows}
}

// ListOf converts slices and arrays to []any. Strings and byte slices are
// not lists.
func ListOf(v any) ([]any, bool) {
	switch l := v.(type) {
	case nil, string, []byte, Value:
		return nil, false
	case []any:
		return l, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
	case reflect.Array:
	default:
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func normalizeRow(list []any) []any {
	row := make([]any, len(list))
	for i, item := range list {
		if item == nil {
			row[i] = ""
			continue
		}
		row[i] = item
	}
	return row
}

// Kind returns the value shape.
func (v Value) Kind() ValueKind { return v.kind }

// IsScalar reports whether v is a single value.
func (v Value) IsScalar() bool { return v.kind == ScalarValue }

// IsRow reports whether v is a single row.
func (v Value) IsRow() bool { return v.kind == RowValue }

// IsRows reports whether v is a list of rows.
func (v Value) IsRows() bool { return v.kind == RowsValue }

// Scalar returns the scalar value.
func (v Value) Scalar() any { return v.scalar }

// Row returns the row values.
func (v Value) Row() []any { return v.row }

// Rows returns the list of rows.
func (v Value) Rows() [][]any { return v.rows }

// Len returns 1 for scalars, the row length for rows and the number of rows
// for row lists.
func (v Value) Len() int {
	switch v.kind {
	case RowValue:
		return len(v.row)
	case RowsValue:
		return len(v.rows)
	default:
		return 1
	}
}

// Flatten returns every bind value in row-major order.
func (v Value) Flatten() []any {
	switch v.kind {
	case RowValue:
		return append([]any(nil), v.row...)
	case RowsValue:
		var out []any
		for _, row := range v.rows {
			out = append(out, row...)
		}
		return out
	default:
		return []any{v.scalar}
	}
}

// Map applies fn to every bind value, passing its position
// ("value", "values[i]" or "values[i][j]"), and returns the mapped Value.
func (v Value) Map(fn func(pos string, item any) (any, error)) (Value, error) {
	switch v.kind {
	case RowValue:
		row := make([]any, len(v.row))
		for i, item := range v.row {
			mapped, err := fn(fmt.Sprintf("values[%d]", i), item)
			if err != nil {
				return Value{}, err
			}
			row[i] = mapped
		}
		return Value{kind: RowValue, row: row}, nil
	case RowsValue:
		rows := make([][]any, len(v.rows))
		for i, src := range v.rows {
			rows[i] = make([]any, len(src))
			for j, item := range src {
				mapped, err := fn(fmt.Sprintf("values[%d][%d]", i, j), item)
				if err != nil {
					return Value{}, err
				}
				rows[i][j] = mapped
			}
		}
		return Value{kind: RowsValue, rows: rows}, nil
	default:
		mapped, err := fn("value", v.scalar)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: ScalarValue, scalar: mapped}, nil
	}
}
