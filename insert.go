package condql

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zoobzio/condql/internal/render"
)

// InsertBuilder builds an INSERT statement with one or more rows.
type InsertBuilder struct {
	statement
	table     string
	columns   []string
	rows      [][]any
	returning []string
	ignore    bool
}

// Insert creates a new INSERT builder for table.
func Insert(d Dialect, table string) *InsertBuilder {
	b := &InsertBuilder{statement: newStatement(d, "Insert"), table: table}
	if b.err == nil && strings.TrimSpace(table) == "" {
		b.fail(valueError("table", errors.New("empty table name")))
	}
	return b
}

// Columns sets the inserted columns. It must be called before Values.
func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	if b.err != nil {
		return b
	}
	if len(b.rows) > 0 {
		b.fail(valueError("columns", errors.New("columns must be set before values")))
		return b
	}
	for i, col := range columns {
		if strings.TrimSpace(col) == "" {
			b.fail(valueError(fmt.Sprintf("columns[%d]", i), errors.New("empty column name")))
			return b
		}
	}
	b.columns = append([]string(nil), columns...)
	return b
}

// Values adds one row. It must have one value per column.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	if b.err != nil {
		return b
	}
	if len(b.columns) == 0 {
		b.fail(valueError("columns", errors.New("columns must be set before values")))
		return b
	}
	if len(values) != len(b.columns) {
		b.fail(rowCountError(len(b.columns), len(values), fmt.Sprintf("rows[%d]", len(b.rows))))
		return b
	}
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Set inserts a single row from a column map. Columns are sorted so the
// output is deterministic.
func (b *InsertBuilder) Set(values map[string]any) *InsertBuilder {
	if b.err != nil {
		return b
	}
	columns := make([]string, 0, len(values))
	for col := range values {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	row := make([]any, len(columns))
	for i, col := range columns {
		row[i] = values[col]
	}
	return b.Columns(columns...).Values(row...)
}

// Returning adds a RETURNING clause on dialects that support it.
func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	if b.err != nil {
		return b
	}
	if b.capability(b.dialect.Capabilities().Returning, "RETURNING") {
		b.returning = append(b.returning, columns...)
	}
	return b
}

// IgnoreConflicts skips rows that violate a unique constraint, using the
// dialect's form: INSERT IGNORE, INSERT OR IGNORE or ON CONFLICT DO NOTHING.
func (b *InsertBuilder) IgnoreConflicts() *InsertBuilder {
	if b.err != nil {
		return b
	}
	if b.capability(b.dialect.Capabilities().Ignore != render.IgnoreNone, "ignoring conflicting rows") {
		b.ignore = true
	}
	return b
}

// ToSQL renders the statement with ? placeholders, params row by row.
func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if len(b.rows) == 0 {
		return "", nil, valueError("values", errors.New("no rows to insert"))
	}

	style := b.dialect.Capabilities().Ignore
	head := "INSERT INTO"
	if b.ignore {
		switch style {
		case render.IgnoreKeyword:
			head = "INSERT IGNORE INTO"
		case render.IgnoreOr:
			head = "INSERT OR IGNORE INTO"
		}
	}

	var w sqlWriter
	w.add(head + " " + b.dialect.QuoteTable(b.table))

	quoted := make([]string, len(b.columns))
	for i, col := range b.columns {
		quoted[i] = b.dialect.QuoteName(col)
	}
	w.add("(" + strings.Join(quoted, ", ") + ")")

	groups := make([]string, len(b.rows))
	for i, row := range b.rows {
		groups[i] = render.BindGroup(len(row))
		w.params = append(w.params, row...)
	}
	w.add("VALUES " + strings.Join(groups, ", "))

	if b.ignore && style == render.IgnoreOnConflict {
		w.add("ON CONFLICT DO NOTHING")
	}
	if len(b.returning) > 0 {
		cols := make([]string, len(b.returning))
		for i, col := range b.returning {
			cols[i] = b.quoteColumn(col)
		}
		w.add("RETURNING " + strings.Join(cols, ", "))
	}
	return w.String(), w.params, nil
}

// Query renders the statement with the dialect's native placeholders.
func (b *InsertBuilder) Query() (string, []any, error) {
	sql, params, err := b.ToSQL()
	return rebind(b.dialect, sql, params, err)
}

// String returns the rendered SQL, or "" on error.
func (b *InsertBuilder) String() string {
	sql, _, _ := b.ToSQL() //nolint:errcheck // String has no error channel
	return sql
}
