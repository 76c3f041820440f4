package condql

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// UpdateBuilder builds an UPDATE statement.
type UpdateBuilder struct {
	statement
	table   string
	sets    []fragment
	where   *Where
	orderBy []fragment
	limit   *int
}

// Update creates a new UPDATE builder for table.
func Update(d Dialect, table string) *UpdateBuilder {
	b := &UpdateBuilder{
		statement: newStatement(d, "Update"),
		table:     table,
		where:     NewWhere(d),
	}
	if b.err == nil && strings.TrimSpace(table) == "" {
		b.fail(valueError("table", errors.New("empty table name")))
	}
	return b
}

// Set assigns a bound value to a column.
func (b *UpdateBuilder) Set(col string, value any) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(col) == "" {
		b.fail(valueError("set", errors.New("empty column name")))
		return b
	}
	b.sets = append(b.sets, fragment{
		sql:    b.dialect.QuoteName(col) + " = ?",
		params: []any{value},
	})
	return b
}

// SetRaw assigns a raw expression to a column: SetRaw("hits", "!hits + ?", 1).
func (b *UpdateBuilder) SetRaw(col, sql string, params ...any) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(col) == "" {
		b.fail(valueError("set", errors.New("empty column name")))
		return b
	}
	f, err := b.raw(sql, params)
	if err != nil {
		b.fail(err)
		return b
	}
	f.sql = b.dialect.QuoteName(col) + " = " + f.sql
	b.sets = append(b.sets, f)
	return b
}

// SetMap assigns every column of values in sorted column order.
func (b *UpdateBuilder) SetMap(values map[string]any) *UpdateBuilder {
	columns := make([]string, 0, len(values))
	for col := range values {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	for _, col := range columns {
		b.Set(col, values[col])
	}
	return b
}

// Where adds conditions to the WHERE clause.
func (b *UpdateBuilder) Where(fn func(*Where)) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	fn(b.where)
	if err := b.where.Err(); err != nil {
		b.fail(err)
	}
	return b
}

// WhereClause returns the WHERE clause for direct use.
func (b *UpdateBuilder) WhereClause() *Where {
	return b.where
}

// OrderBy orders the updated rows, on dialects that allow it.
func (b *UpdateBuilder) OrderBy(col string, dir Direction) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	if !b.capability(b.dialect.Capabilities().MutationLimit, "ORDER BY in UPDATE") {
		return b
	}
	f, err := b.orderTerm(col, dir)
	if err != nil {
		b.fail(err)
		return b
	}
	b.orderBy = append(b.orderBy, f)
	return b
}

// Limit caps the number of updated rows, on dialects that allow it.
func (b *UpdateBuilder) Limit(limit int) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	if !b.capability(b.dialect.Capabilities().MutationLimit, "LIMIT in UPDATE") {
		return b
	}
	if limit < 0 {
		b.fail(valueError("limit", fmt.Errorf("negative limit %d", limit)))
		return b
	}
	b.limit = &limit
	return b
}

// ToSQL renders the statement. Params follow SET, WHERE, ORDER BY.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if len(b.sets) == 0 {
		return "", nil, valueError("set", errors.New("no columns to update"))
	}

	var w sqlWriter
	w.add("UPDATE " + b.dialect.QuoteTable(b.table))

	sets, params, err := joinFragments(b.sets, ", ")
	if err != nil {
		return "", nil, err
	}
	w.add("SET "+sets, params...)

	if err := mutationTail(&w, b.where, b.orderBy, b.limit); err != nil {
		return "", nil, err
	}
	return w.String(), w.params, nil
}

// Query renders the statement with the dialect's native placeholders.
func (b *UpdateBuilder) Query() (string, []any, error) {
	sql, params, err := b.ToSQL()
	return rebind(b.dialect, sql, params, err)
}

// String returns the rendered SQL, or "" on error.
func (b *UpdateBuilder) String() string {
	sql, _, _ := b.ToSQL() //nolint:errcheck // String has no error channel
	return sql
}

// mutationTail writes WHERE, ORDER BY and LIMIT for UPDATE and DELETE.
func mutationTail(w *sqlWriter, where *Where, orderBy []fragment, limit *int) error {
	sql, params, err := where.WhereToSQL(true)
	if err != nil {
		return err
	}
	w.add(sql, params...)

	if len(orderBy) > 0 {
		sql, params, err := joinFragments(orderBy, ", ")
		if err != nil {
			return err
		}
		w.add("ORDER BY "+sql, params...)
	}
	if limit != nil {
		w.add("LIMIT " + strconv.Itoa(*limit))
	}
	return nil
}
