package table

import (
	"context"
	"fmt"
	"sort"

	"github.com/zoobzio/condql"
)

// State is the persistence state of a Row.
type State int

const (
	// StateNew rows have never been saved; Save inserts them.
	StateNew State = iota
	// StateClean rows match the database.
	StateClean
	// StateModified rows have unsaved changes; Save updates them.
	StateModified
	// StateDeleted rows have been deleted and can no longer be used.
	StateDeleted
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateClean:
		return "clean"
	case StateModified:
		return "modified"
	case StateDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Row is one record of a table with change tracking.
type Row struct {
	table    *Table
	values   map[string]any
	modified map[string]bool
	state    State
	key      map[string]any // primary key as last persisted
}

// NewRow creates an unsaved row.
func (t *Table) NewRow(values map[string]any) *Row {
	return t.row(values, StateNew)
}

// Load creates a row for values read from the database.
func (t *Table) Load(values map[string]any) *Row {
	return t.row(values, StateClean)
}

func (t *Table) row(values map[string]any, state State) *Row {
	r := &Row{
		table:    t,
		values:   make(map[string]any, len(values)),
		modified: make(map[string]bool),
		state:    state,
	}
	for col, v := range values {
		r.values[col] = v
	}
	if state == StateClean {
		r.snapshotKey()
	}
	return r
}

// State returns the row state.
func (r *Row) State() State {
	return r.state
}

// Get returns the value of column.
func (r *Row) Get(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Values returns a copy of the row values.
func (r *Row) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for col, v := range r.values {
		out[col] = v
	}
	return out
}

// Modified returns the columns changed since the row was loaded or saved,
// sorted.
func (r *Row) Modified() []string {
	cols := make([]string, 0, len(r.modified))
	for col := range r.modified {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Set changes a column value. Clean rows become modified.
func (r *Row) Set(column string, value any) error {
	if r.state == StateDeleted {
		return ErrRowDeleted
	}
	if err := r.table.CheckColumn(column); err != nil {
		return err
	}
	r.values[column] = value
	if r.state == StateNew {
		return nil
	}
	r.modified[column] = true
	r.state = StateModified
	return nil
}

// Save inserts a new row or updates the modified columns of a changed row,
// keyed by the primary key. Clean rows are left alone.
func (r *Row) Save(ctx context.Context) error {
	switch r.state {
	case StateDeleted:
		return ErrRowDeleted
	case StateClean:
		return nil
	case StateNew:
		return r.insert(ctx)
	default:
		return r.update(ctx)
	}
}

func (r *Row) insert(ctx context.Context) error {
	ins := r.table.Insert()
	if err := r.table.checkColumns(sortedKeys(r.values)); err != nil {
		return err
	}
	ins.Set(r.values)

	res, err := r.table.run(ctx, "insert", ins)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", r.table.name, err)
	}

	// Fill a single auto-generated key when the driver reports it.
	if pk := r.table.primaryKey; len(pk) == 1 && r.values[pk[0]] == nil {
		if id, err := res.LastInsertId(); err == nil {
			r.values[pk[0]] = id
		}
	}
	r.markClean()
	return nil
}

func (r *Row) update(ctx context.Context) error {
	cols := r.Modified()
	upd := r.table.Update()
	for _, col := range cols {
		upd.Set(col, r.values[col])
	}
	if err := r.wherePrimaryKey(upd.WhereClause()); err != nil {
		return err
	}
	if _, err := r.table.run(ctx, "update", upd); err != nil {
		return fmt.Errorf("update %s: %w", r.table.name, err)
	}
	r.markClean()
	return nil
}

// Delete removes a saved row.
func (r *Row) Delete(ctx context.Context) error {
	switch r.state {
	case StateDeleted:
		return ErrRowDeleted
	case StateNew:
		return ErrRowNotPersisted
	}
	del := r.table.Delete()
	if err := r.wherePrimaryKey(del.WhereClause()); err != nil {
		return err
	}
	if _, err := r.table.run(ctx, "delete", del); err != nil {
		return fmt.Errorf("delete from %s: %w", r.table.name, err)
	}
	r.state = StateDeleted
	r.modified = make(map[string]bool)
	return nil
}

// wherePrimaryKey constrains w to the persisted row, so a changed key still
// targets the original record.
func (r *Row) wherePrimaryKey(w *condql.Where) error {
	// One comparison per key column, so composite keys work without row
	// values.
	for _, col := range r.table.primaryKey {
		v, ok := r.key[col]
		if !ok || v == nil {
			return fmt.Errorf("%w: %s", ErrMissingPrimaryKey, col)
		}
		w.Column(col, v)
	}
	return w.Err()
}

func (r *Row) markClean() {
	r.state = StateClean
	r.modified = make(map[string]bool)
	r.snapshotKey()
}

// snapshotKey records the current primary key values.
func (r *Row) snapshotKey() {
	r.key = make(map[string]any, len(r.table.primaryKey))
	for _, col := range r.table.primaryKey {
		if v, ok := r.values[col]; ok {
			r.key[col] = v
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
