package types

import (
	"errors"
	"fmt"
)

// Column is a column reference: a single name or an ordered row of names
// used for row-value comparisons such as (a, b) = (?, ?).
type Column struct {
	names []string
}

// NewColumn creates a column reference. A single name is a plain column,
// more than one name is a row reference.
func NewColumn(names ...string) Column {
	return Column{names: append([]string(nil), names...)}
}

// ColumnOf normalizes a string, a []string (or any list of strings) or a
// Column into a Column. A one-element list is unwrapped to a single name.
func ColumnOf(v any) (Column, error) {
	var names []string
	switch c := v.(type) {
	case Column:
		names = c.names
	case string:
		names = []string{c}
	case []string:
		names = c
	default:
		list, ok := ListOf(v)
		if !ok {
			return Column{}, fmt.Errorf("unsupported column reference of type %T", v)
		}
		names = make([]string, len(list))
		for i, item := range list {
			name, ok := item.(string)
			if !ok {
				return Column{}, fmt.Errorf("column[%d] is %T, want string", i, item)
			}
			names[i] = name
		}
	}
	if len(names) == 0 {
		return Column{}, errors.New("empty column reference")
	}
	for i, name := range names {
		if name == "" {
			return Column{}, fmt.Errorf("column[%d] is empty", i)
		}
	}
	return NewColumn(names...), nil
}

// IsRow reports whether the reference names more than one column.
func (c Column) IsRow() bool {
	return len(c.names) > 1
}

// Name returns the first (for single references, the only) column name.
func (c Column) Name() string {
	if len(c.names) == 0 {
		return ""
	}
	return c.names[0]
}

// Names returns a copy of the column names.
func (c Column) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of columns referenced.
func (c Column) Len() int {
	return len(c.names)
}
