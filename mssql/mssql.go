// Package mssql provides the SQL Server dialect for condql.
package mssql

import "github.com/zoobzio/condql/internal/render"

// Dialect implements the SQL Server dialect: bracketed identifiers, @pN
// placeholders after rebinding and OFFSET/FETCH pagination.
// SQL Server has no row-value comparisons.
type Dialect struct {
	*render.Base
}

// New creates a new SQL Server dialect.
func New(opts ...render.Option) *Dialect {
	opts = append([]render.Option{render.WithQuote("[", "]")}, opts...)
	return &Dialect{Base: render.NewBase("mssql", Capabilities(), opts...)}
}

// Capabilities returns the SQL features supported by SQL Server.
func Capabilities() render.Capabilities {
	return render.Capabilities{
		RowValues:     false,
		Returning:     false,
		RowLocking:    false,
		MutationLimit: false,
		Limit:         render.OffsetFetch,
		Ignore:        render.IgnoreNone,
		Dates:         render.DateCast,
		Placeholder:   render.PlaceholderAtP,
	}
}
