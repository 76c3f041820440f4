// Package table binds condql statement builders to named tables and tracks
// row state for save and delete.
//
// A Schema indexes the tables and columns of a DBML project so that column
// references can be checked before any SQL is built:
//
//	schema, err := table.NewSchema(project)
//	users, err := schema.Bind("users", mysql.New(), table.WithExecutor(db))
//
//	row := users.NewRow(map[string]any{"name": "alice"})
//	err = row.Save(ctx) // INSERT INTO `users` (`name`) VALUES (?)
package table

import (
	"fmt"

	"github.com/zoobzio/condql"
	"github.com/zoobzio/dbml"
)

// Schema indexes the tables and columns of a DBML project.
type Schema struct {
	project *dbml.Project
	tables  map[string][]string        // table -> columns in declaration order
	fields  map[string]map[string]bool // table -> column set
}

// NewSchema creates a schema from a DBML project.
func NewSchema(project *dbml.Project) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	s := &Schema{
		project: project,
		tables:  make(map[string][]string),
		fields:  make(map[string]map[string]bool),
	}
	for _, table := range project.Tables {
		s.fields[table.Name] = make(map[string]bool)
		for _, col := range table.Columns {
			s.tables[table.Name] = append(s.tables[table.Name], col.Name)
			s.fields[table.Name][col.Name] = true
		}
	}
	return s, nil
}

// Project returns the DBML project the schema was built from.
func (s *Schema) Project() *dbml.Project {
	return s.project
}

// Has reports whether the schema defines table.
func (s *Schema) Has(table string) bool {
	_, ok := s.fields[table]
	return ok
}

// Columns returns the columns of table in declaration order.
func (s *Schema) Columns(table string) ([]string, error) {
	if !s.Has(table) {
		return nil, &UnknownTableError{Table: table}
	}
	return append([]string(nil), s.tables[table]...), nil
}

// CheckColumn returns an error unless table has column.
func (s *Schema) CheckColumn(table, column string) error {
	cols, ok := s.fields[table]
	if !ok {
		return &UnknownTableError{Table: table}
	}
	if !cols[column] {
		return &UnknownColumnError{Table: table, Column: column}
	}
	return nil
}

// Bind creates a Table for name, validating the primary key columns.
func (s *Schema) Bind(name string, d condql.Dialect, opts ...Option) (*Table, error) {
	if !s.Has(name) {
		return nil, &UnknownTableError{Table: name}
	}
	t := New(name, d, opts...)
	t.schema = s
	for _, col := range t.primaryKey {
		if err := s.CheckColumn(name, col); err != nil {
			return nil, fmt.Errorf("primary key: %w", err)
		}
	}
	return t, nil
}
