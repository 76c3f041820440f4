package condql

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/zoobzio/condql/internal/render"
	"github.com/zoobzio/condql/internal/types"
)

// Expression is anything that renders to a SQL fragment and its bind values.
// Conditions, clauses and statement builders are Expressions and nest into
// each other.
type Expression interface {
	ToSQL() (string, []any, error)
}

// Entry is one accumulated condition. Literal entries carry SQL and Params;
// nested entries carry an Expression rendered at ToSQL time, parenthesized
// and prefixed with SQL.
type Entry struct {
	Logic  LogicOperator
	SQL    string
	Params []any
	Nested Expression
}

// Conditions accumulates boolean SQL fragments joined by AND/OR.
//
// Conditions is not safe for concurrent use. Build independent branches in
// their own instances and combine them with Merge or Group.
type Conditions struct {
	dialect   Dialect
	entries   []Entry
	err       error
	rendering bool // set while ToSQL runs, to detect cycles
}

// New creates an empty condition builder quoting through d.
func New(d Dialect) *Conditions {
	return &Conditions{dialect: d}
}

// Dialect returns the attached dialect.
func (c *Conditions) Dialect() Dialect {
	return c.dialect
}

// Err returns the first error recorded by the builder.
func (c *Conditions) Err() error {
	return c.err
}

// SetError records err unless an error is already recorded.
func (c *Conditions) SetError(err error) *Conditions {
	if c.err == nil {
		c.err = err
	}
	return c
}

func (c *Conditions) unwrap() *Conditions {
	return c
}

// isNilExpression reports whether expr is nil, a typed nil pointer, or a
// clause without conditions.
func isNilExpression(expr Expression) bool {
	if expr == nil {
		return true
	}
	if v := reflect.ValueOf(expr); v.Kind() == reflect.Pointer && v.IsNil() {
		return true
	}
	if inner, ok := expr.(interface{ unwrap() *Conditions }); ok {
		return inner.unwrap() == nil
	}
	return false
}

// ready reports whether the builder can accept a new entry that needs the
// dialect.
func (c *Conditions) ready() bool {
	if c.err != nil {
		return false
	}
	if err := requireDialect(c.dialect, "Conditions"); err != nil {
		c.err = err
		return false
	}
	return true
}

// Logic appends a literal SQL fragment joined to the previous entry by
// logic. Every other operation funnels through Logic or LogicExpr.
func (c *Conditions) Logic(logic LogicOperator, sql string, params ...any) *Conditions {
	if c.err != nil {
		return c
	}
	logic = logic.Normalize()
	if !logic.Valid() {
		return c.SetError(valueError("logic", fmt.Errorf("unknown connector %q", string(logic))))
	}
	c.entries = append(c.entries, Entry{
		Logic:  logic,
		SQL:    sql,
		Params: append([]any(nil), params...),
	})
	return c
}

// LogicExpr appends a nested expression joined to the previous entry by
// logic. The expression is rendered in parentheses when the builder is.
func (c *Conditions) LogicExpr(logic LogicOperator, expr Expression) *Conditions {
	return c.logicExpr(logic, "", expr)
}

func (c *Conditions) logicExpr(logic LogicOperator, prefix string, expr Expression) *Conditions {
	if c.err != nil {
		return c
	}
	if isNilExpression(expr) {
		return c.SetError(valueError("expression", errors.New("nil expression")))
	}
	logic = logic.Normalize()
	if !logic.Valid() {
		return c.SetError(valueError("logic", fmt.Errorf("unknown connector %q", string(logic))))
	}
	c.entries = append(c.entries, Entry{Logic: logic, SQL: prefix, Nested: expr})
	return c
}

// Column compares a column or row of columns to a value, inferring IN for
// lists and = otherwise.
//
//	Column("a", 1)                     -> `a` = ?
//	Column("a", []int{1, 2})           -> `a` IN (?, ?)
//	Column([]string{"a", "b"}, []int{1, 2}) -> (`a`, `b`) = (?, ?)
func (c *Conditions) Column(col, value any) *Conditions {
	return c.compare(AND, col, Infer, value, "", nil)
}

// ColumnOp compares a column to a value with an explicit operator.
func (c *Conditions) ColumnOp(col any, op Operator, value any) *Conditions {
	return c.compare(AND, col, op, value, "", nil)
}

// OrColumn is Column joined with OR.
func (c *Conditions) OrColumn(col, value any) *Conditions {
	return c.compare(OR, col, Infer, value, "", nil)
}

// OrColumnOp is ColumnOp joined with OR.
func (c *Conditions) OrColumnOp(col any, op Operator, value any) *Conditions {
	return c.compare(OR, col, op, value, "", nil)
}

// Like appends col LIKE pattern.
func (c *Conditions) Like(col any, pattern string) *Conditions {
	return c.compare(AND, col, LIKE, pattern, "", nil)
}

// OrLike is Like joined with OR.
func (c *Conditions) OrLike(col any, pattern string) *Conditions {
	return c.compare(OR, col, LIKE, pattern, "", nil)
}

// NotLike appends col NOT LIKE pattern.
func (c *Conditions) NotLike(col any, pattern string) *Conditions {
	return c.compare(AND, col, NotLike, pattern, "", nil)
}

// OrNotLike is NotLike joined with OR.
func (c *Conditions) OrNotLike(col any, pattern string) *Conditions {
	return c.compare(OR, col, NotLike, pattern, "", nil)
}

// Relation compares two column references. Both sides are quoted
// identifiers; nothing is bound.
//
//	Relation("users.id", "posts.user_id") -> `users`.`id` = `posts`.`user_id`
func (c *Conditions) Relation(col1, col2 any) *Conditions {
	return c.relation(AND, col1, Infer, col2)
}

// RelationOp compares two column references with an explicit operator.
func (c *Conditions) RelationOp(col1 any, op Operator, col2 any) *Conditions {
	return c.relation(AND, col1, op, col2)
}

// OrRelation is Relation joined with OR.
func (c *Conditions) OrRelation(col1, col2 any) *Conditions {
	return c.relation(OR, col1, Infer, col2)
}

// OrRelationOp is RelationOp joined with OR.
func (c *Conditions) OrRelationOp(col1 any, op Operator, col2 any) *Conditions {
	return c.relation(OR, col1, op, col2)
}

// IsNull appends col IS NULL.
func (c *Conditions) IsNull(col any) *Conditions {
	return c.null(AND, col, "IS NULL")
}

// OrIsNull is IsNull joined with OR.
func (c *Conditions) OrIsNull(col any) *Conditions {
	return c.null(OR, col, "IS NULL")
}

// IsNotNull appends col IS NOT NULL.
func (c *Conditions) IsNotNull(col any) *Conditions {
	return c.null(AND, col, "IS NOT NULL")
}

// OrIsNotNull is IsNotNull joined with OR.
func (c *Conditions) OrIsNotNull(col any) *Conditions {
	return c.null(OR, col, "IS NOT NULL")
}

func (c *Conditions) null(logic LogicOperator, col any, test string) *Conditions {
	if !c.ready() {
		return c
	}
	ref, err := types.ColumnOf(col)
	if err != nil {
		return c.SetError(valueError("column", err))
	}
	if !ref.IsRow() {
		return c.Logic(logic, c.dialect.QuoteName(ref.Name())+" "+test)
	}
	parts := make([]string, ref.Len())
	for i, name := range ref.Names() {
		parts[i] = c.dialect.QuoteName(name) + " " + test
	}
	return c.Logic(logic, "("+strings.Join(parts, " AND ")+")")
}

// Between appends col BETWEEN ? AND ?.
func (c *Conditions) Between(col, low, high any) *Conditions {
	return c.between(AND, col, Between, low, high)
}

// OrBetween is Between joined with OR.
func (c *Conditions) OrBetween(col, low, high any) *Conditions {
	return c.between(OR, col, Between, low, high)
}

// NotBetween appends col NOT BETWEEN ? AND ?.
func (c *Conditions) NotBetween(col, low, high any) *Conditions {
	return c.between(AND, col, NotBetween, low, high)
}

// OrNotBetween is NotBetween joined with OR.
func (c *Conditions) OrNotBetween(col, low, high any) *Conditions {
	return c.between(OR, col, NotBetween, low, high)
}

func (c *Conditions) between(logic LogicOperator, col any, op Operator, low, high any) *Conditions {
	if !c.ready() {
		return c
	}
	ref, err := types.ColumnOf(col)
	if err != nil {
		return c.SetError(valueError("column", err))
	}
	if ref.IsRow() {
		return c.SetError(operatorError(op, "column", ErrInvalidOperatorForArray))
	}
	if _, ok := types.ListOf(low); ok {
		return c.SetError(operatorError(op, "min", ErrInvalidOperatorForArray))
	}
	if _, ok := types.ListOf(high); ok {
		return c.SetError(operatorError(op, "max", ErrInvalidOperatorForArray))
	}
	sql := c.dialect.QuoteName(ref.Name()) + " " + string(op) + " ? AND ?"
	return c.Logic(logic, sql, low, high)
}

// Group builds a parenthesized sub-expression. fn receives a fresh builder
// sharing the dialect.
//
//	Group(func(q *Conditions) { q.Column("a", 1).OrColumn("b", 2) })
//	-> (`a` = ? OR `b` = ?)
func (c *Conditions) Group(fn func(*Conditions)) *Conditions {
	return c.group(AND, "", fn)
}

// OrGroup is Group joined with OR.
func (c *Conditions) OrGroup(fn func(*Conditions)) *Conditions {
	return c.group(OR, "", fn)
}

// Not builds a negated group: NOT (...).
func (c *Conditions) Not(fn func(*Conditions)) *Conditions {
	return c.group(AND, "NOT ", fn)
}

// OrNot is Not joined with OR.
func (c *Conditions) OrNot(fn func(*Conditions)) *Conditions {
	return c.group(OR, "NOT ", fn)
}

func (c *Conditions) group(logic LogicOperator, prefix string, fn func(*Conditions)) *Conditions {
	if !c.ready() {
		return c
	}
	nested := New(c.dialect)
	fn(nested)
	if nested.err != nil {
		return c.SetError(nested.err)
	}
	return c.logicExpr(logic, prefix, nested)
}

// Merge appends an already built expression, typically another Conditions
// or clause, as a parenthesized sub-expression. Clauses merge without their
// keyword. The expression is rendered when c is, so later changes to it are
// visible.
func (c *Conditions) Merge(expr Expression) *Conditions {
	return c.merge(AND, expr)
}

// OrMerge is Merge joined with OR.
func (c *Conditions) OrMerge(expr Expression) *Conditions {
	return c.merge(OR, expr)
}

func (c *Conditions) merge(logic LogicOperator, expr Expression) *Conditions {
	if c.err != nil {
		return c
	}
	if isNilExpression(expr) {
		return c.SetError(valueError("expression", errors.New("nil expression")))
	}
	if inner, ok := expr.(interface{ unwrap() *Conditions }); ok && inner.unwrap() == c {
		return c.SetError(valueError("expression", errors.New("cannot merge conditions into themselves")))
	}
	return c.logicExpr(logic, "", expr)
}

// Raw appends a SQL fragment in parentheses. !name markers are quoted by the
// dialect and the number of ? placeholders must match params.
//
//	Raw("!a > ? OR !b IS NULL", 5) -> (`a` > ? OR `b` IS NULL)
func (c *Conditions) Raw(sql string, params ...any) *Conditions {
	return c.raw(AND, sql, params)
}

// OrRaw is Raw joined with OR.
func (c *Conditions) OrRaw(sql string, params ...any) *Conditions {
	return c.raw(OR, sql, params)
}

func (c *Conditions) raw(logic LogicOperator, sql string, params []any) *Conditions {
	if !c.ready() {
		return c
	}
	if strings.TrimSpace(sql) == "" {
		return c.SetError(valueError("sql", errors.New("empty raw SQL")))
	}
	sql = c.dialect.QuoteSQL(sql)
	if n := render.CountPlaceholders(sql); n != len(params) {
		return c.SetError(valueError("params",
			fmt.Errorf("raw SQL has %d placeholders, got %d params", n, len(params))))
	}
	return c.Logic(logic, "("+sql+")", params...)
}

// Exists appends EXISTS (subquery).
func (c *Conditions) Exists(sub Expression) *Conditions {
	return c.logicExpr(AND, "EXISTS ", sub)
}

// OrExists is Exists joined with OR.
func (c *Conditions) OrExists(sub Expression) *Conditions {
	return c.logicExpr(OR, "EXISTS ", sub)
}

// NotExists appends NOT EXISTS (subquery).
func (c *Conditions) NotExists(sub Expression) *Conditions {
	return c.logicExpr(AND, "NOT EXISTS ", sub)
}

// OrNotExists is NotExists joined with OR.
func (c *Conditions) OrNotExists(sub Expression) *Conditions {
	return c.logicExpr(OR, "NOT EXISTS ", sub)
}

// ColumnSub compares a column or row of columns to a subquery. Infer
// selects IN.
//
//	ColumnSub("id", condql.IN, sel) -> `id` IN (SELECT ...)
func (c *Conditions) ColumnSub(col any, op Operator, sub Expression) *Conditions {
	return c.columnSub(AND, col, op, sub)
}

// OrColumnSub is ColumnSub joined with OR.
func (c *Conditions) OrColumnSub(col any, op Operator, sub Expression) *Conditions {
	return c.columnSub(OR, col, op, sub)
}

func (c *Conditions) columnSub(logic LogicOperator, col any, op Operator, sub Expression) *Conditions {
	if !c.ready() {
		return c
	}
	ref, err := types.ColumnOf(col)
	if err != nil {
		return c.SetError(valueError("column", err))
	}
	op = op.Normalize()
	if !op.Valid() || op.IsRange() {
		return c.SetError(operatorError(op, "subquery", ErrInvalidOperator))
	}
	if op == Infer {
		op = IN
	}
	left, err := c.columnSQL(ref, "")
	if err != nil {
		return c.SetError(err)
	}
	return c.logicExpr(logic, left+" "+string(op)+" ", sub)
}

// Has reports whether any entry has been added.
func (c *Conditions) Has() bool {
	return len(c.entries) > 0
}

// Get returns a copy of the accumulated entries.
func (c *Conditions) Get() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Clear discards every entry and the recorded error.
func (c *Conditions) Clear() *Conditions {
	c.entries = nil
	c.err = nil
	return c
}

// ToSQL renders the entries joined by their connectors. Nested expressions
// are parenthesized and their params spliced in place; empty ones are
// skipped. An empty builder renders "" and no params. A builder reached again
// while it is being rendered fails with ErrInvalidValue.
func (c *Conditions) ToSQL() (string, []any, error) {
	if c.err != nil {
		return "", nil, c.err
	}
	if c.rendering {
		return "", nil, valueError("expression", errors.New("conditions contain themselves"))
	}
	c.rendering = true
	defer func() { c.rendering = false }()

	var sb strings.Builder
	var params []any
	for _, e := range c.entries {
		sql, p := e.SQL, e.Params
		if e.Nested != nil {
			sub, subParams, err := e.Nested.ToSQL()
			if err != nil {
				return "", nil, err
			}
			if sub == "" {
				continue
			}
			sql = e.SQL + "(" + sub + ")"
			p = subParams
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
			sb.WriteString(string(e.Logic))
			sb.WriteString(" ")
		}
		sb.WriteString(sql)
		params = append(params, p...)
	}
	return sb.String(), params, nil
}

// MustToSQL renders the conditions and panics on error.
func (c *Conditions) MustToSQL() (string, []any) {
	sql, params, err := c.ToSQL()
	if err != nil {
		panic(err)
	}
	return sql, params
}

// String returns the rendered SQL, or "" on error.
func (c *Conditions) String() string {
	sql, _, _ := c.ToSQL() //nolint:errcheck // String has no error channel
	return sql
}
