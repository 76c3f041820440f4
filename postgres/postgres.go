// Package postgres provides the PostgreSQL dialect for condql.
package postgres

import (
	"github.com/jackc/pgx/v5"
	"github.com/zoobzio/condql/internal/render"
)

// Dialect implements the PostgreSQL dialect: double-quoted identifiers and
// $n placeholders after rebinding.
type Dialect struct {
	*render.Base
}

// New creates a new PostgreSQL dialect.
func New(opts ...render.Option) *Dialect {
	opts = append([]render.Option{render.WithIdentifierQuoter(quoteIdentifier)}, opts...)
	return &Dialect{Base: render.NewBase("postgres", Capabilities(), opts...)}
}

// quoteIdentifier quotes a single segment the way pgx sanitizes identifiers.
func quoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// Capabilities returns the SQL features supported by PostgreSQL.
func Capabilities() render.Capabilities {
	return render.Capabilities{
		RowValues:     true,
		Returning:     true,
		RowLocking:    true,
		MutationLimit: false,
		Limit:         render.LimitOffset,
		Ignore:        render.IgnoreOnConflict,
		Dates:         render.DateExtract,
		Placeholder:   render.PlaceholderDollar,
	}
}
