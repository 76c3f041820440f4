package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zoobzio/condql"
)

// Query is the YAML description of a SELECT statement.
//
//	table: users
//	columns: [id, name]
//	where:
//	  - column: status
//	    value: active
//	  - column: id
//	    op: in
//	    value: [1, 2, 3]
//	    or: true
//	order_by:
//	  - column: name
//	    direction: asc
//	limit: 10
type Query struct {
	Table   string      `yaml:"table"`
	Columns []string    `yaml:"columns"`
	Where   []Condition `yaml:"where"`
	OrderBy []Order     `yaml:"order_by"`
	Limit   *int        `yaml:"limit"`
	Offset  *int        `yaml:"offset"`
}

// Condition is one WHERE entry. Column is a name or a list of names for a
// row comparison. Op defaults to = or IN from the shape of Value; the
// pseudo operators "is null" and "is not null" take no value.
type Condition struct {
	Column any    `yaml:"column"`
	Op     string `yaml:"op"`
	Value  any    `yaml:"value"`
	Or     bool   `yaml:"or"`
}

// Order is one ORDER BY term.
type Order struct {
	Column    string `yaml:"column"`
	Direction string `yaml:"direction"`
}

// ParseQuery decodes a query description. Unknown keys are rejected.
func ParseQuery(r io.Reader) (*Query, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var q Query
	if err := dec.Decode(&q); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty query description")
		}
		return nil, fmt.Errorf("parse query: %w", err)
	}
	if strings.TrimSpace(q.Table) == "" {
		return nil, errors.New("query has no table")
	}
	return &q, nil
}

// Build creates the SELECT statement for d.
func (q *Query) Build(d condql.Dialect) *condql.SelectBuilder {
	sel := condql.Select(d, q.Columns...).From(q.Table)
	sel.Where(func(w *condql.Where) {
		for _, c := range q.Where {
			c.apply(w)
		}
	})
	for _, o := range q.OrderBy {
		sel.OrderBy(o.Column, condql.Direction(o.Direction))
	}
	if q.Limit != nil {
		sel.Limit(*q.Limit)
	}
	if q.Offset != nil {
		sel.Offset(*q.Offset)
	}
	return sel
}

func (c Condition) apply(w *condql.Where) {
	switch strings.Join(strings.Fields(strings.ToUpper(c.Op)), " ") {
	case "IS NULL":
		if c.Or {
			w.OrIsNull(c.Column)
		} else {
			w.IsNull(c.Column)
		}
	case "IS NOT NULL":
		if c.Or {
			w.OrIsNotNull(c.Column)
		} else {
			w.IsNotNull(c.Column)
		}
	default:
		if c.Or {
			w.OrColumnOp(c.Column, condql.Operator(c.Op), c.Value)
		} else {
			w.ColumnOp(c.Column, condql.Operator(c.Op), c.Value)
		}
	}
}
