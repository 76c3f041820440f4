package condql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zoobzio/condql/internal/render"
)

// fragment is a rendered piece of a statement with its bind values. When
// expr is set the fragment is rendered lazily as sql + "(" + expr + ")" +
// suffix.
type fragment struct {
	sql    string
	params []any
	expr   Expression
	suffix string
}

func (f fragment) render() (string, []any, error) {
	if f.expr == nil {
		return f.sql, f.params, nil
	}
	sub, params, err := f.expr.ToSQL()
	if err != nil {
		return "", nil, err
	}
	return f.sql + "(" + sub + ")" + f.suffix, params, nil
}

// statement holds the state shared by every statement builder: the dialect
// and the first error encountered.
type statement struct {
	dialect Dialect
	err     error
}

func newStatement(d Dialect, component string) statement {
	return statement{dialect: d, err: requireDialect(d, component)}
}

// Err returns the first error recorded by the builder.
func (s *statement) Err() error {
	return s.err
}

// SetError records err unless an error is already recorded (for use by
// packages that validate input before building).
func (s *statement) SetError(err error) {
	s.fail(err)
}

// fail records err unless an error is already recorded.
func (s *statement) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// quoteColumn quotes a column reference. "*" and "t.*" keep their star,
// "col alias" and "col AS alias" quote both sides, and anything else is
// passed through QuoteSQL.
func (s *statement) quoteColumn(name string) string {
	name = strings.TrimSpace(name)
	if name == "*" || strings.HasSuffix(name, ".*") {
		return s.dialect.QuoteName(name)
	}
	return s.dialect.QuoteTable(name)
}

// raw quotes !name markers and checks the placeholder count.
func (s *statement) raw(sql string, params []any) (fragment, error) {
	if strings.TrimSpace(sql) == "" {
		return fragment{}, valueError("sql", errors.New("empty raw SQL"))
	}
	sql = s.dialect.QuoteSQL(sql)
	if n := render.CountPlaceholders(sql); n != len(params) {
		return fragment{}, valueError("params",
			fmt.Errorf("raw SQL has %d placeholders, got %d params", n, len(params)))
	}
	return fragment{sql: sql, params: append([]any(nil), params...)}, nil
}

// orderTerm renders "col ASC" or "col DESC".
func (s *statement) orderTerm(col string, dir Direction) (fragment, error) {
	dir = Direction(strings.ToUpper(strings.TrimSpace(string(dir))))
	if dir == "" {
		dir = ASC
	}
	if dir != ASC && dir != DESC {
		return fragment{}, valueError("direction", fmt.Errorf("unknown sort direction %q", string(dir)))
	}
	if strings.TrimSpace(col) == "" {
		return fragment{}, valueError("column", errors.New("empty column name"))
	}
	return fragment{sql: s.quoteColumn(col) + " " + string(dir)}, nil
}

// capability records an UnsupportedFeatureError unless ok.
func (s *statement) capability(ok bool, feature string, hint ...string) bool {
	if !ok {
		s.fail(render.NewUnsupportedFeatureError(s.dialect.Name(), feature, hint...))
	}
	return ok
}

// joinFragments renders fragments separated by sep, collecting params in
// order.
func joinFragments(frags []fragment, sep string) (string, []any, error) {
	parts := make([]string, 0, len(frags))
	var params []any
	for _, f := range frags {
		sql, p, err := f.render()
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, p...)
	}
	return strings.Join(parts, sep), params, nil
}

// sqlWriter assembles a statement from space separated parts.
type sqlWriter struct {
	parts  []string
	params []any
}

func (w *sqlWriter) add(sql string, params ...any) {
	if sql == "" {
		return
	}
	w.parts = append(w.parts, sql)
	w.params = append(w.params, params...)
}

func (w *sqlWriter) String() string {
	return strings.Join(w.parts, " ")
}

// rebind renders expr and rewrites its placeholders for d.
func rebind(d Dialect, sql string, params []any, err error) (string, []any, error) {
	if err != nil {
		return "", nil, err
	}
	return d.Rebind(sql), params, nil
}
