package condql

import (
	"errors"
	"fmt"
	"strings"
)

// DeleteBuilder builds a DELETE statement.
type DeleteBuilder struct {
	statement
	table   string
	where   *Where
	orderBy []fragment
	limit   *int
}

// Delete creates a new DELETE builder for table.
func Delete(d Dialect, table string) *DeleteBuilder {
	b := &DeleteBuilder{
		statement: newStatement(d, "Delete"),
		table:     table,
		where:     NewWhere(d),
	}
	if b.err == nil && strings.TrimSpace(table) == "" {
		b.fail(valueError("table", errors.New("empty table name")))
	}
	return b
}

// Where adds conditions to the WHERE clause.
func (b *DeleteBuilder) Where(fn func(*Where)) *DeleteBuilder {
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
func (b *DeleteBuilder) WhereClause() *Where {
	return b.where
}

// OrderBy orders the deleted rows, on dialects that allow it.
func (b *DeleteBuilder) OrderBy(col string, dir Direction) *DeleteBuilder {
	if b.err != nil {
		return b
	}
	if !b.capability(b.dialect.Capabilities().MutationLimit, "ORDER BY in DELETE") {
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

// Limit caps the number of deleted rows, on dialects that allow it.
func (b *DeleteBuilder) Limit(limit int) *DeleteBuilder {
	if b.err != nil {
		return b
	}
	if !b.capability(b.dialect.Capabilities().MutationLimit, "LIMIT in DELETE") {
		return b
	}
	if limit < 0 {
		b.fail(valueError("limit", fmt.Errorf("negative limit %d", limit)))
		return b
	}
	b.limit = &limit
	return b
}

// ToSQL renders the statement. Params follow WHERE, ORDER BY.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	var w sqlWriter
	w.add("DELETE FROM " + b.dialect.QuoteTable(b.table))
	if err := mutationTail(&w, b.where, b.orderBy, b.limit); err != nil {
		return "", nil, err
	}
	return w.String(), w.params, nil
}

// Query renders the statement with the dialect's native placeholders.
func (b *DeleteBuilder) Query() (string, []any, error) {
	sql, params, err := b.ToSQL()
	return rebind(b.dialect, sql, params, err)
}

// String returns the rendered SQL, or "" on error.
func (b *DeleteBuilder) String() string {
	sql, _, _ := b.ToSQL() //nolint:errcheck // String has no error channel
	return sql
}
