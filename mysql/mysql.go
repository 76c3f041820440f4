// Package mysql provides the MySQL dialect for condql.
package mysql

import "github.com/zoobzio/condql/internal/render"

// Dialect implements the MySQL dialect: backtick identifiers, ? placeholders
// and LIMIT/OFFSET pagination.
type Dialect struct {
	*render.Base
}

// New creates a new MySQL dialect.
func New(opts ...render.Option) *Dialect {
	return &Dialect{Base: render.NewBase("mysql", Capabilities(), opts...)}
}

// Capabilities returns the SQL features supported by MySQL.
func Capabilities() render.Capabilities {
	return render.Capabilities{
		RowValues:     true,
		Returning:     false,
		RowLocking:    true,
		MutationLimit: true,
		Limit:         render.LimitOffset,
		OffsetOnly:    "18446744073709551615",
		Ignore:        render.IgnoreKeyword,
		Dates:         render.DateFunctions,
		Placeholder:   render.PlaceholderQuestion,
	}
}
