package table

import (
	"context"
	"database/sql"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/zoobzio/condql"
)

// Executor runs a statement. *sql.DB, *sql.Tx and *sql.Conn satisfy it.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Option configures a Table.
type Option func(*Table)

// WithPrimaryKey sets the primary key columns. The default is "id".
func WithPrimaryKey(columns ...string) Option {
	return func(t *Table) {
		t.primaryKey = append([]string(nil), columns...)
	}
}

// WithExecutor sets the executor used by Row.Save and Row.Delete.
func WithExecutor(exec Executor) Option {
	return func(t *Table) {
		t.exec = exec
	}
}

// WithLogger sets the logger statements are reported to. The default
// discards everything.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// Table binds a table name, its primary key and a dialect.
type Table struct {
	name       string
	dialect    condql.Dialect
	schema     *Schema
	primaryKey []string
	exec       Executor
	logger     logrus.FieldLogger
}

// New creates a table without a schema. Column references are not checked.
func New(name string, d condql.Dialect, opts ...Option) *Table {
	t := &Table{
		name:       name,
		dialect:    d,
		primaryKey: []string{"id"},
		logger:     discardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Dialect returns the table dialect.
func (t *Table) Dialect() condql.Dialect {
	return t.dialect
}

// PrimaryKey returns the primary key columns.
func (t *Table) PrimaryKey() []string {
	return append([]string(nil), t.primaryKey...)
}

// Columns returns the schema columns, or nil for schemaless tables.
func (t *Table) Columns() []string {
	if t.schema == nil {
		return nil
	}
	cols, _ := t.schema.Columns(t.name) //nolint:errcheck // bound tables exist
	return cols
}

// CheckColumn returns an error if the schema does not define column. Table
// qualified names ("users.id") and "*" are accepted.
func (t *Table) CheckColumn(column string) error {
	if t.schema == nil || column == "*" {
		return nil
	}
	if i := strings.LastIndexByte(column, '.'); i != -1 {
		column = column[i+1:]
		if column == "*" {
			return nil
		}
	}
	return t.schema.CheckColumn(t.name, column)
}

func (t *Table) checkColumns(columns []string) error {
	for _, col := range columns {
		if err := t.CheckColumn(col); err != nil {
			return err
		}
	}
	return nil
}

// Select starts a SELECT from the table.
func (t *Table) Select(columns ...string) *condql.SelectBuilder {
	sel := condql.Select(t.dialect, columns...).From(t.name)
	if err := t.checkColumns(columns); err != nil {
		sel.SetError(err)
	}
	return sel
}

// Find selects the row whose primary key equals pk. Composite keys take a
// slice with one value per key column.
func (t *Table) Find(pk any) *condql.SelectBuilder {
	sel := t.Select()
	return sel.Where(func(w *condql.Where) {
		w.Column(t.primaryKey, pk)
	})
}

// Insert starts an INSERT into the table.
func (t *Table) Insert(columns ...string) *condql.InsertBuilder {
	ins := condql.Insert(t.dialect, t.name).Columns(columns...)
	if err := t.checkColumns(columns); err != nil {
		ins.SetError(err)
	}
	return ins
}

// Update starts an UPDATE of the table.
func (t *Table) Update() *condql.UpdateBuilder {
	return condql.Update(t.dialect, t.name)
}

// Delete starts a DELETE from the table.
func (t *Table) Delete() *condql.DeleteBuilder {
	return condql.Delete(t.dialect, t.name)
}

// statement is implemented by every condql statement builder.
type statement interface {
	Query() (string, []any, error)
}

// run renders stmt for the dialect and executes it.
func (t *Table) run(ctx context.Context, op string, stmt statement) (sql.Result, error) {
	if t.exec == nil {
		return nil, ErrNoExecutor
	}
	query, params, err := stmt.Query()
	if err != nil {
		return nil, err
	}

	log := t.logger.WithFields(logrus.Fields{
		"table":     t.name,
		"operation": op,
		"sql":       query,
		"params":    params,
	})
	log.Debug("executing statement")

	res, err := t.exec.ExecContext(ctx, query, params...)
	if err != nil {
		log.WithError(err).Error("statement failed")
		return nil, err
	}
	return res, nil
}
