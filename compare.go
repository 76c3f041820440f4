package condql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zoobzio/condql/internal/render"
	"github.com/zoobzio/condql/internal/types"
)

// formatter normalizes one bind value before it is bound.
type formatter func(any) (any, error)

// compare is the shared path of Column and the date helpers. part extracts a
// date part from every column when set; format normalizes every bind value.
func (c *Conditions) compare(logic LogicOperator, col any, op Operator, value any, part render.DatePart, format formatter) *Conditions {
	if !c.ready() {
		return c
	}
	ref, err := types.ColumnOf(col)
	if err != nil {
		return c.SetError(valueError("column", err))
	}
	op = op.Normalize()
	if !op.Valid() {
		return c.SetError(operatorError(op, "operator", ErrInvalidOperator))
	}

	val := types.ValueOf(value)
	if val.IsRow() && val.Len() == 0 {
		return c.SetError(valueError("values", errors.New("empty list")))
	}
	if format != nil {
		val, err = val.Map(func(pos string, item any) (any, error) {
			out, err := format(item)
			if err != nil {
				return nil, valueError(pos, err)
			}
			return out, nil
		})
		if err != nil {
			return c.SetError(err)
		}
	}

	var sql string
	var params []any
	if ref.IsRow() {
		sql, params, err = c.compareRow(ref, op, val, part)
	} else {
		sql, params, err = c.compareScalar(ref, op, val, part)
	}
	if err != nil {
		return c.SetError(err)
	}
	return c.Logic(logic, sql, params...)
}

// compareScalar renders a single column against a scalar or a list.
func (c *Conditions) compareScalar(ref Column, op Operator, val Value, part render.DatePart) (string, []any, error) {
	left, err := c.columnSQL(ref, part)
	if err != nil {
		return "", nil, err
	}

	switch val.Kind() {
	case types.RowValue:
		if op == Infer {
			op = IN
		}
		if op.IsRange() {
			if val.Len() != 2 {
				return "", nil, rowCountError(2, val.Len(), "values")
			}
			return left + " " + string(op) + " ? AND ?", val.Row(), nil
		}
		if !op.IsList() {
			return "", nil, operatorError(op, "values", ErrInvalidOperatorForArray)
		}
		return left + " " + string(op) + " " + c.dialect.PrepareBindKeys(val), val.Row(), nil

	case types.RowsValue:
		// A single column takes one value per row.
		for i, row := range val.Rows() {
			if len(row) != 1 {
				return "", nil, rowCountError(1, len(row), fmt.Sprintf("values[%d]", i))
			}
		}
		if op == Infer {
			op = IN
		}
		if !op.IsList() {
			return "", nil, operatorError(op, "values", ErrInvalidOperatorForArray)
		}
		flat := val.Flatten()
		return left + " " + string(op) + " " + render.BindGroup(len(flat)), flat, nil

	default:
		if op == Infer {
			op = EQ
		}
		if op.IsRange() {
			return "", nil, operatorError(op, "value", ErrInvalidOperatorForScalar)
		}
		op = op.Scalar()
		return left + " " + string(op) + " ?", []any{val.Scalar()}, nil
	}
}

// compareRow renders a row of N columns against one row of N values or a
// list of such rows.
func (c *Conditions) compareRow(ref Column, op Operator, val Value, part render.DatePart) (string, []any, error) {
	left, err := c.columnSQL(ref, part)
	if err != nil {
		return "", nil, err
	}
	n := ref.Len()

	switch val.Kind() {
	case types.RowValue:
		if op == Infer {
			op = EQ
		}
		if !rowComparable(op.Scalar()) {
			return "", nil, operatorError(op, "values", ErrInvalidOperatorForArray)
		}
		op = op.Scalar()
		if val.Len() != n {
			return "", nil, rowCountError(n, val.Len(), "values")
		}
		return left + " " + string(op) + " " + c.dialect.PrepareBindKeys(val), val.Row(), nil

	case types.RowsValue:
		if op == Infer {
			op = IN
		}
		if !op.IsList() {
			return "", nil, operatorError(op, "values", ErrInvalidOperatorForArray)
		}
		for i, row := range val.Rows() {
			if len(row) != n {
				return "", nil, rowCountError(n, len(row), fmt.Sprintf("values[%d]", i))
			}
		}
		return left + " " + string(op) + " " + c.dialect.PrepareBindKeys(val), val.Flatten(), nil

	default:
		if op.IsList() {
			return "", nil, operatorError(op, "values", ErrInvalidOperatorForScalar)
		}
		return "", nil, rowCountError(n, 1, "values")
	}
}

// rowComparable reports whether op can compare two rows.
func rowComparable(op Operator) bool {
	switch op {
	case EQ, NE, NotEQ, GT, GE, LT, LE:
		return true
	default:
		return false
	}
}

// columnSQL quotes a column reference, extracting part from each name when
// set. Rows render as (a, b).
func (c *Conditions) columnSQL(ref Column, part render.DatePart) (string, error) {
	names := ref.Names()
	quoted := make([]string, len(names))
	for i, name := range names {
		q := c.dialect.QuoteName(name)
		if part != "" {
			var err error
			if q, err = c.dialect.DatePart(part, q); err != nil {
				return "", err
			}
		}
		quoted[i] = q
	}
	if !ref.IsRow() {
		return quoted[0], nil
	}
	if !c.dialect.Capabilities().RowValues {
		return "", render.NewUnsupportedFeatureError(c.dialect.Name(), "row value comparison")
	}
	return "(" + strings.Join(quoted, ", ") + ")", nil
}

// relation compares two column references without binding anything.
func (c *Conditions) relation(logic LogicOperator, col1 any, op Operator, col2 any) *Conditions {
	if !c.ready() {
		return c
	}
	ref, err := types.ColumnOf(col1)
	if err != nil {
		return c.SetError(valueError("column", err))
	}
	op = op.Normalize()
	if !op.Valid() {
		return c.SetError(operatorError(op, "operator", ErrInvalidOperator))
	}

	var sql string
	if ref.IsRow() {
		sql, err = c.relationRow(ref, op, col2)
	} else {
		sql, err = c.relationScalar(ref, op, col2)
	}
	if err != nil {
		return c.SetError(err)
	}
	return c.Logic(logic, sql)
}

// relationScalar renders a column against another column, or against a list
// of columns for IN and BETWEEN.
func (c *Conditions) relationScalar(ref Column, op Operator, col2 any) (string, error) {
	left := c.dialect.QuoteName(ref.Name())

	list, isList := types.ListOf(col2)
	if isList && len(list) == 1 {
		col2, isList = list[0], false
		if inner, ok := types.ListOf(col2); ok {
			list, isList = inner, true
		}
	}
	if !isList {
		name, err := columnName(col2, "columns")
		if err != nil {
			return "", err
		}
		if op == Infer {
			op = EQ
		}
		if op.IsRange() {
			return "", operatorError(op, "columns", ErrInvalidOperatorForScalar)
		}
		return left + " " + string(op.Scalar()) + " " + c.dialect.QuoteName(name), nil
	}

	names := make([]string, len(list))
	for i, item := range list {
		name, err := columnName(item, fmt.Sprintf("columns[%d]", i))
		if err != nil {
			return "", err
		}
		names[i] = c.dialect.QuoteName(name)
	}
	if len(names) == 0 {
		return "", valueError("columns", errors.New("empty list"))
	}

	if op == Infer {
		op = IN
	}
	switch {
	case op.IsRange():
		if len(names) != 2 {
			return "", rowCountError(2, len(names), "columns")
		}
		return left + " " + string(op) + " " + names[0] + " AND " + names[1], nil
	case op.IsList():
		return left + " " + string(op) + " (" + strings.Join(names, ", ") + ")", nil
	default:
		return "", operatorError(op, "columns", ErrInvalidOperatorForArray)
	}
}

// relationRow renders a row of N columns against N column positions. Each
// position is a single name, or for IN a list of alternatives; single names
// are repeated across every alternative.
//
//	(a, b) = (x, y)
//	(a, b) IN ((x1, y), (x2, y))
func (c *Conditions) relationRow(ref Column, op Operator, col2 any) (string, error) {
	left, err := c.columnSQL(ref, "")
	if err != nil {
		return "", err
	}
	n := ref.Len()

	positions, ok := types.ListOf(col2)
	if !ok {
		positions = []any{col2}
	}
	// [[x, y]] is the row [x, y], as for values.
	if len(positions) == 1 && n > 1 {
		if inner, isList := types.ListOf(positions[0]); isList {
			positions = inner
		}
	}
	if len(positions) != n {
		return "", rowCountError(n, len(positions), "columns")
	}

	// alternatives[i] holds the candidates of position i; nil means broadcast.
	alternatives := make([][]string, n)
	singles := make([]string, n)
	width := 0
	for i, pos := range positions {
		key := fmt.Sprintf("columns[%d]", i)
		list, isList := types.ListOf(pos)
		if isList && len(list) == 1 {
			pos, isList = list[0], false
		}
		if !isList {
			name, err := columnName(pos, key)
			if err != nil {
				return "", err
			}
			singles[i] = c.dialect.QuoteName(name)
			continue
		}
		if width != 0 && len(list) != width {
			return "", rowCountError(width, len(list), key)
		}
		width = len(list)
		alternatives[i] = make([]string, len(list))
		for j, item := range list {
			name, err := columnName(item, fmt.Sprintf("%s[%d]", key, j))
			if err != nil {
				return "", err
			}
			alternatives[i][j] = c.dialect.QuoteName(name)
		}
	}

	if width == 0 {
		if op == Infer {
			op = EQ
		}
		if !rowComparable(op.Scalar()) {
			return "", operatorError(op, "columns", ErrInvalidOperatorForArray)
		}
		return left + " " + string(op.Scalar()) + " (" + strings.Join(singles, ", ") + ")", nil
	}

	if op == Infer {
		op = IN
	}
	if !op.IsList() {
		return "", operatorError(op, "columns", ErrInvalidOperatorForArray)
	}
	rows := make([]string, width)
	for j := range rows {
		row := make([]string, n)
		for i := range row {
			if alternatives[i] != nil {
				row[i] = alternatives[i][j]
			} else {
				row[i] = singles[i]
			}
		}
		rows[j] = "(" + strings.Join(row, ", ") + ")"
	}
	return left + " " + string(op) + " (" + strings.Join(rows, ", ") + ")", nil
}

// columnName asserts a relation operand is a non-empty column name.
func columnName(v any, pos string) (string, error) {
	name, ok := v.(string)
	if !ok {
		return "", valueError(pos, fmt.Errorf("column name is %T, want string", v))
	}
	if name == "" {
		return "", valueError(pos, errors.New("empty column name"))
	}
	return name, nil
}
