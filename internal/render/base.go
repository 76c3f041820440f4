package render

import "strconv"

// Option configures a Base dialect.
type Option func(*Base)

// WithQuote sets the identifier quoting characters.
func WithQuote(open, closing string) Option {
	return func(b *Base) {
		b.open = open
		b.close = closing
		b.segment = nil
	}
}

// WithIdentifierQuoter replaces segment quoting with fn. fn receives a
// single identifier segment (never "*") and returns it quoted.
func WithIdentifierQuoter(fn func(string) string) Option {
	return func(b *Base) {
		b.segment = fn
	}
}

// WithName overrides the dialect name used in error messages.
func WithName(name string) Option {
	return func(b *Base) {
		b.name = name
	}
}

// Base implements identifier quoting, bind key groups, LIMIT/OFFSET and
// placeholder rebinding for every dialect. Its configuration is fixed at
// construction.
type Base struct {
	segment func(string) string
	name    string
	open    string
	close   string
	caps    Capabilities
}

// NewBase creates a dialect quoting identifiers with backticks unless an
// option says otherwise.
func NewBase(name string, caps Capabilities, opts ...Option) *Base {
	b := &Base{
		name:  name,
		open:  "`",
		close: "`",
		caps:  caps,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the dialect name.
func (b *Base) Name() string {
	return b.name
}

// Capabilities returns the SQL features supported by the dialect.
func (b *Base) Capabilities() Capabilities {
	return b.caps
}

// LimitOffset renders the trailing pagination literals. ordered reports
// whether the statement has an ORDER BY clause.
func (b *Base) LimitOffset(limit, offset *int, ordered bool) (string, error) {
	if limit == nil && offset == nil {
		return "", nil
	}

	if b.caps.Limit == OffsetFetch {
		if !ordered {
			return "", NewUnsupportedFeatureError(b.name, "LIMIT/OFFSET without ORDER BY",
				"add ORDER BY clause when using LIMIT or OFFSET")
		}
		out := "OFFSET 0 ROWS"
		if offset != nil {
			out = "OFFSET " + strconv.Itoa(*offset) + " ROWS"
		}
		if limit != nil {
			out += " FETCH NEXT " + strconv.Itoa(*limit) + " ROWS ONLY"
		}
		return out, nil
	}

	out := ""
	switch {
	case limit != nil:
		out = "LIMIT " + strconv.Itoa(*limit)
	case b.caps.OffsetOnly != "":
		out = "LIMIT " + b.caps.OffsetOnly
	}
	if offset != nil {
		if out != "" {
			out += " "
		}
		out += "OFFSET " + strconv.Itoa(*offset)
	}
	return out, nil
}
