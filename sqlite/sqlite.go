// Package sqlite provides the SQLite dialect for condql.
package sqlite

import "github.com/zoobzio/condql/internal/render"

// Dialect implements the SQLite dialect: double-quoted identifiers and ?
// placeholders. Row values need SQLite 3.15, RETURNING needs 3.35.
type Dialect struct {
	*render.Base
}

// New creates a new SQLite dialect.
func New(opts ...render.Option) *Dialect {
	opts = append([]render.Option{render.WithQuote(`"`, `"`)}, opts...)
	return &Dialect{Base: render.NewBase("sqlite", Capabilities(), opts...)}
}

// Capabilities returns the SQL features supported by SQLite.
func Capabilities() render.Capabilities {
	return render.Capabilities{
		RowValues:     true,
		Returning:     true,
		RowLocking:    false,
		MutationLimit: false,
		Limit:         render.LimitOffset,
		OffsetOnly:    "-1",
		Ignore:        render.IgnoreOr,
		Dates:         render.DateStrftime,
		Placeholder:   render.PlaceholderQuestion,
	}
}
