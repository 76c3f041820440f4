package condql

import (
	"errors"
	"fmt"
	"strings"
)

type joinPart struct {
	kind  JoinType
	table fragment
	on    *On
}

// SelectBuilder builds a SELECT statement.
type SelectBuilder struct {
	statement
	columns   []fragment
	distinct  bool
	from      *fragment
	joins     []joinPart
	where     *Where
	groupBy   []fragment
	having    *Having
	orderBy   []fragment
	limit     *int
	offset    *int
	forUpdate bool
}

// Select creates a new SELECT builder. Without columns it selects *.
func Select(d Dialect, columns ...string) *SelectBuilder {
	s := &SelectBuilder{
		statement: newStatement(d, "Select"),
		where:     NewWhere(d),
		having:    NewHaving(d),
	}
	return s.Columns(columns...)
}

// Columns adds columns to select. Names are quoted; "col AS alias" and
// "t.*" are understood.
func (s *SelectBuilder) Columns(columns ...string) *SelectBuilder {
	if s.err != nil {
		return s
	}
	for _, col := range columns {
		if strings.TrimSpace(col) == "" {
			s.fail(valueError("columns", errors.New("empty column name")))
			return s
		}
		s.columns = append(s.columns, fragment{sql: s.quoteColumn(col)})
	}
	return s
}

// ColumnsRaw adds a raw select expression. !name markers are quoted.
func (s *SelectBuilder) ColumnsRaw(sql string, params ...any) *SelectBuilder {
	if s.err != nil {
		return s
	}
	f, err := s.raw(sql, params)
	if err != nil {
		s.fail(err)
		return s
	}
	s.columns = append(s.columns, f)
	return s
}

// Distinct adds DISTINCT to the select.
func (s *SelectBuilder) Distinct() *SelectBuilder {
	s.distinct = true
	return s
}

// From sets the table to select from. "users u" and "users AS u" alias it.
func (s *SelectBuilder) From(table string) *SelectBuilder {
	if s.err != nil {
		return s
	}
	if strings.TrimSpace(table) == "" {
		s.fail(valueError("table", errors.New("empty table name")))
		return s
	}
	s.from = &fragment{sql: s.dialect.QuoteTable(table)}
	return s
}

// FromSub selects from a subquery: FROM (SELECT ...) AS alias.
func (s *SelectBuilder) FromSub(sub Expression, alias string) *SelectBuilder {
	if s.err != nil {
		return s
	}
	if sub == nil || alias == "" {
		s.fail(valueError("from", errors.New("subquery and alias are required")))
		return s
	}
	s.from = &fragment{expr: sub, suffix: " AS " + s.dialect.QuoteName(alias)}
	return s
}

// Join adds an INNER JOIN. fn builds the ON clause.
func (s *SelectBuilder) Join(table string, fn func(*On)) *SelectBuilder {
	return s.JoinOn(InnerJoin, table, fn)
}

// LeftJoin adds a LEFT JOIN.
func (s *SelectBuilder) LeftJoin(table string, fn func(*On)) *SelectBuilder {
	return s.JoinOn(LeftJoin, table, fn)
}

// RightJoin adds a RIGHT JOIN.
func (s *SelectBuilder) RightJoin(table string, fn func(*On)) *SelectBuilder {
	return s.JoinOn(RightJoin, table, fn)
}

// CrossJoin adds a CROSS JOIN.
func (s *SelectBuilder) CrossJoin(table string) *SelectBuilder {
	return s.JoinOn(CrossJoin, table, nil)
}

// JoinOn adds a join of the given kind. fn may be nil.
func (s *SelectBuilder) JoinOn(kind JoinType, table string, fn func(*On)) *SelectBuilder {
	if s.err != nil {
		return s
	}
	switch kind {
	case InnerJoin, LeftJoin, RightJoin, CrossJoin:
	default:
		s.fail(valueError("join", fmt.Errorf("unknown join type %q", string(kind))))
		return s
	}
	if strings.TrimSpace(table) == "" {
		s.fail(valueError("join", errors.New("empty table name")))
		return s
	}
	on := NewOn(s.dialect)
	if fn != nil {
		if kind == CrossJoin {
			s.fail(valueError("join", errors.New("CROSS JOIN takes no ON clause")))
			return s
		}
		fn(on)
		if err := on.Err(); err != nil {
			s.fail(err)
			return s
		}
	}
	s.joins = append(s.joins, joinPart{
		kind:  kind,
		table: fragment{sql: s.dialect.QuoteTable(table)},
		on:    on,
	})
	return s
}

// Where adds conditions to the WHERE clause. Repeated calls extend the same
// clause, joined with AND.
func (s *SelectBuilder) Where(fn func(*Where)) *SelectBuilder {
	if s.err != nil {
		return s
	}
	fn(s.where)
	if err := s.where.Err(); err != nil {
		s.fail(err)
	}
	return s
}

// WhereClause returns the WHERE clause for direct use.
func (s *SelectBuilder) WhereClause() *Where {
	return s.where
}

// GroupBy adds GROUP BY columns.
func (s *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	if s.err != nil {
		return s
	}
	for _, col := range columns {
		if strings.TrimSpace(col) == "" {
			s.fail(valueError("group by", errors.New("empty column name")))
			return s
		}
		s.groupBy = append(s.groupBy, fragment{sql: s.quoteColumn(col)})
	}
	return s
}

// GroupByRaw adds a raw GROUP BY expression.
func (s *SelectBuilder) GroupByRaw(sql string, params ...any) *SelectBuilder {
	if s.err != nil {
		return s
	}
	f, err := s.raw(sql, params)
	if err != nil {
		s.fail(err)
		return s
	}
	s.groupBy = append(s.groupBy, f)
	return s
}

// Having adds conditions to the HAVING clause.
func (s *SelectBuilder) Having(fn func(*Having)) *SelectBuilder {
	if s.err != nil {
		return s
	}
	fn(s.having)
	if err := s.having.Err(); err != nil {
		s.fail(err)
	}
	return s
}

// HavingClause returns the HAVING clause for direct use.
func (s *SelectBuilder) HavingClause() *Having {
	return s.having
}

// OrderBy adds an ORDER BY term.
func (s *SelectBuilder) OrderBy(col string, dir Direction) *SelectBuilder {
	if s.err != nil {
		return s
	}
	f, err := s.orderTerm(col, dir)
	if err != nil {
		s.fail(err)
		return s
	}
	s.orderBy = append(s.orderBy, f)
	return s
}

// OrderByRaw adds a raw ORDER BY expression.
func (s *SelectBuilder) OrderByRaw(sql string, params ...any) *SelectBuilder {
	if s.err != nil {
		return s
	}
	f, err := s.raw(sql, params)
	if err != nil {
		s.fail(err)
		return s
	}
	s.orderBy = append(s.orderBy, f)
	return s
}

// Limit sets the maximum number of rows returned.
func (s *SelectBuilder) Limit(limit int) *SelectBuilder {
	if s.err != nil {
		return s
	}
	if limit < 0 {
		s.fail(valueError("limit", fmt.Errorf("negative limit %d", limit)))
		return s
	}
	s.limit = &limit
	return s
}

// Offset sets the number of rows skipped.
func (s *SelectBuilder) Offset(offset int) *SelectBuilder {
	if s.err != nil {
		return s
	}
	if offset < 0 {
		s.fail(valueError("offset", fmt.Errorf("negative offset %d", offset)))
		return s
	}
	s.offset = &offset
	return s
}

// ForUpdate locks the selected rows.
func (s *SelectBuilder) ForUpdate() *SelectBuilder {
	if s.err != nil {
		return s
	}
	if s.capability(s.dialect.Capabilities().RowLocking, "FOR UPDATE") {
		s.forUpdate = true
	}
	return s
}

// ToSQL renders the statement with ? placeholders. Params follow the
// textual order: columns, FROM, JOIN, WHERE, GROUP BY, HAVING, ORDER BY.
// LIMIT and OFFSET are literals.
func (s *SelectBuilder) ToSQL() (string, []any, error) {
	if s.err != nil {
		return "", nil, s.err
	}

	var w sqlWriter
	head := "SELECT"
	if s.distinct {
		head += " DISTINCT"
	}
	w.add(head)

	if len(s.columns) == 0 {
		w.add("*")
	} else {
		sql, params, err := joinFragments(s.columns, ", ")
		if err != nil {
			return "", nil, err
		}
		w.add(sql, params...)
	}

	if s.from != nil {
		sql, params, err := s.from.render()
		if err != nil {
			return "", nil, err
		}
		w.add("FROM "+sql, params...)
	}

	for _, j := range s.joins {
		table, params, err := j.table.render()
		if err != nil {
			return "", nil, err
		}
		w.add(string(j.kind)+" "+table, params...)
		on, onParams, err := j.on.OnToSQL(true)
		if err != nil {
			return "", nil, err
		}
		w.add(on, onParams...)
	}

	where, params, err := s.where.WhereToSQL(true)
	if err != nil {
		return "", nil, err
	}
	w.add(where, params...)

	if len(s.groupBy) > 0 {
		sql, params, err := joinFragments(s.groupBy, ", ")
		if err != nil {
			return "", nil, err
		}
		w.add("GROUP BY "+sql, params...)
	}

	having, params, err := s.having.HavingToSQL(true)
	if err != nil {
		return "", nil, err
	}
	w.add(having, params...)

	if len(s.orderBy) > 0 {
		sql, params, err := joinFragments(s.orderBy, ", ")
		if err != nil {
			return "", nil, err
		}
		w.add("ORDER BY "+sql, params...)
	}

	page, err := s.dialect.LimitOffset(s.limit, s.offset, len(s.orderBy) > 0)
	if err != nil {
		return "", nil, err
	}
	w.add(page)

	if s.forUpdate {
		w.add("FOR UPDATE")
	}

	return w.String(), w.params, nil
}

// Query renders the statement with the dialect's native placeholders.
func (s *SelectBuilder) Query() (string, []any, error) {
	sql, params, err := s.ToSQL()
	return rebind(s.dialect, sql, params, err)
}

// MustToSQL renders the statement and panics on error.
func (s *SelectBuilder) MustToSQL() (string, []any) {
	sql, params, err := s.ToSQL()
	if err != nil {
		panic(err)
	}
	return sql, params
}

// String returns the rendered SQL, or "" on error.
func (s *SelectBuilder) String() string {
	sql, _, _ := s.ToSQL() //nolint:errcheck // String has no error channel
	return sql
}
