package condql

import (
	"github.com/zoobzio/condql/internal/render"
	"github.com/zoobzio/condql/internal/types"
)

// Dialect quotes identifiers and produces placeholder text for one SQL
// dialect. Dialects are immutable once constructed and safe to share.
// The mysql, mariadb, postgres, sqlite and mssql packages provide
// implementations.
type Dialect interface {
	// Name returns the dialect name, used in error messages.
	Name() string

	// QuoteName quotes every non-* segment of a dotted identifier.
	QuoteName(name string) string

	// QuoteSQL replaces !identifier markers with quoted identifiers.
	QuoteSQL(sql string) string

	// QuoteTable quotes a table reference, passing expressions through
	// QuoteSQL.
	QuoteTable(name string) string

	// PrepareBindKeys returns "?", "(?, ?)" or "((?, ?), (?, ?))".
	PrepareBindKeys(v types.Value) string

	// LimitOffset renders trailing LIMIT/OFFSET literals.
	LimitOffset(limit, offset *int, ordered bool) (string, error)

	// Rebind rewrites ? placeholders into the driver's native style.
	Rebind(sql string) string

	// DatePart wraps a quoted column so it yields a date or time part.
	DatePart(part render.DatePart, column string) (string, error)

	// Capabilities describes the features the dialect supports.
	Capabilities() render.Capabilities
}

// DialectOption configures a dialect at construction.
type DialectOption = render.Option

// Capabilities describes the SQL features supported by a dialect.
type Capabilities = render.Capabilities

// WithQuote sets the identifier quoting characters of a dialect.
//
//	mysql.New(condql.WithQuote(`"`, `"`))
func WithQuote(open, closing string) DialectOption {
	return render.WithQuote(open, closing)
}

// WithIdentifierQuoter replaces identifier segment quoting with fn.
func WithIdentifierQuoter(fn func(string) string) DialectOption {
	return render.WithIdentifierQuoter(fn)
}

// genericDialect is a dialect with no vendor specific behavior.
type genericDialect struct {
	*render.Base
}

// NewDialect creates a generic dialect: backtick quoting, ? placeholders,
// LIMIT/OFFSET pagination, row values and DATE()/YEAR() style date
// functions. Use it for tests or databases without a dedicated package.
func NewDialect(name string, opts ...DialectOption) Dialect {
	caps := render.Capabilities{
		RowValues:   true,
		Limit:       render.LimitOffset,
		Dates:       render.DateFunctions,
		Placeholder: render.PlaceholderQuestion,
	}
	return genericDialect{Base: render.NewBase(name, caps, opts...)}
}

// requireDialect records ErrUndefinedDialect for component when d is nil.
func requireDialect(d Dialect, component string) error {
	if d == nil {
		return &DialectError{Component: component}
	}
	return nil
}
