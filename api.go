// Package condql provides a fluent SQL condition and statement builder with
// multi-dialect support.
//
// The core is Conditions: an ordered list of boolean SQL fragments joined by
// AND/OR, each carrying the bind values for its ? placeholders. Conditions
// render to a (sql, params) pair in which the params always line up with the
// placeholders from left to right, however deeply groups are nested.
//
// # Basic Usage
//
//	import "github.com/zoobzio/condql/mysql"
//
//	where := condql.NewWhere(mysql.New())
//	where.Column("status", "active").
//		OrColumn("id", []int{1, 2, 3})
//
//	sql, params, err := where.WhereToSQL(true)
//	// sql:    WHERE `status` = ? OR `id` IN (?, ?, ?)
//	// params: ["active", 1, 2, 3]
//
// # Row Values
//
// A column reference may be a single name or a row of names. Rows compare
// against one row of values or, with IN, a list of rows:
//
//	c.Column([]string{"a", "b"}, [][]any{{1, 2}, {3, 4}})
//	// (`a`, `b`) IN ((?, ?), (?, ?))
//
// # Statements
//
// Select, Insert, Update and Delete compose WHERE/HAVING/ON clauses with the
// remaining parts of a statement. Query returns the SQL rebound to the
// dialect's native placeholders ($1 for PostgreSQL, @p1 for SQL Server).
//
//	sel := condql.Select(postgres.New(), "id", "name").
//		From("users").
//		Where(func(w *condql.Where) { w.Column("active", true) }).
//		OrderBy("name", condql.ASC).
//		Limit(10)
//
//	query, params, err := sel.Query()
//	// SELECT "id", "name" FROM "users" WHERE "active" = $1 ORDER BY "name" ASC LIMIT 10
//
// # Errors
//
// Builders keep the first error they encounter; later calls are no-ops and
// ToSQL returns the error. Err reports it immediately after the offending
// call. Errors match the package sentinels through errors.Is.
package condql

import "github.com/zoobzio/condql/internal/types"

// Operator represents a comparison operator.
type Operator = types.Operator

// Re-export operator constants for public API.
const (
	Infer      = types.Infer
	EQ         = types.EQ
	NE         = types.NE
	NotEQ      = types.NotEQ
	GT         = types.GT
	GE         = types.GE
	LT         = types.LT
	LE         = types.LE
	IN         = types.IN
	NotIn      = types.NotIn
	LIKE       = types.LIKE
	NotLike    = types.NotLike
	Between    = types.Between
	NotBetween = types.NotBetween
)

// LogicOperator connects an entry to the previous one.
type LogicOperator = types.LogicOperator

// Re-export connector constants.
const (
	AND = types.AND
	OR  = types.OR
)

// Direction represents sort direction.
type Direction = types.Direction

// Re-export direction constants.
const (
	ASC  = types.ASC
	DESC = types.DESC
)

// JoinType represents the type of SQL join.
type JoinType = types.JoinType

// Re-export join type constants.
const (
	InnerJoin = types.InnerJoin
	LeftJoin  = types.LeftJoin
	RightJoin = types.RightJoin
	CrossJoin = types.CrossJoin
)

// Column is a single or composite column reference.
type Column = types.Column

// Value is a scalar, a row or a list of rows.
type Value = types.Value

// Cols creates a composite column reference.
func Cols(names ...string) Column {
	return types.NewColumn(names...)
}

// Vals normalizes v into a Value, applying the single-element unwrap rule.
func Vals(v any) Value {
	return types.ValueOf(v)
}
