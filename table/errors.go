package table

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTable is returned for tables missing from the schema.
	ErrUnknownTable = errors.New("table: unknown table")

	// ErrUnknownColumn is returned for columns missing from the schema.
	ErrUnknownColumn = errors.New("table: unknown column")

	// ErrNoExecutor is returned by Save and Delete when the table has no
	// executor.
	ErrNoExecutor = errors.New("table: no executor configured")

	// ErrRowDeleted is returned when a deleted row is modified or saved.
	ErrRowDeleted = errors.New("table: row has been deleted")

	// ErrRowNotPersisted is returned when deleting a row that was never saved.
	ErrRowNotPersisted = errors.New("table: row has not been saved")

	// ErrMissingPrimaryKey is returned when a row has no value for a primary
	// key column.
	ErrMissingPrimaryKey = errors.New("table: missing primary key value")
)

// UnknownTableError reports a table missing from the schema.
type UnknownTableError struct {
	Table string
}

// Error returns the error string.
func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("table: %q not found in schema", e.Table)
}

// Is reports whether the target error matches ErrUnknownTable.
func (e *UnknownTableError) Is(err error) bool {
	return err == ErrUnknownTable
}

// UnknownColumnError reports a column missing from a table.
type UnknownColumnError struct {
	Table  string
	Column string
}

// Error returns the error string.
func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("table: column %q not found in %q", e.Column, e.Table)
}

// Is reports whether the target error matches ErrUnknownColumn.
func (e *UnknownColumnError) Is(err error) bool {
	return err == ErrUnknownColumn
}
