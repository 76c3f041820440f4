package render

// LimitStyle selects how LIMIT/OFFSET literals are written.
type LimitStyle int

const (
	LimitOffset LimitStyle = iota // LIMIT n OFFSET m
	OffsetFetch                   // OFFSET m ROWS FETCH NEXT n ROWS ONLY
)

// IgnoreStyle selects how INSERT skips conflicting rows.
type IgnoreStyle int

const (
	IgnoreNone       IgnoreStyle = iota // not supported
	IgnoreKeyword                       // INSERT IGNORE INTO
	IgnoreOr                            // INSERT OR IGNORE INTO
	IgnoreOnConflict                    // ... ON CONFLICT DO NOTHING
)

// PlaceholderStyle selects the driver-native bind placeholder.
type PlaceholderStyle int

const (
	PlaceholderQuestion PlaceholderStyle = iota // ?
	PlaceholderDollar                           // $1, $2
	PlaceholderAtP                              // @p1, @p2
)

// Capabilities describes the SQL features supported by a dialect.
type Capabilities struct {
	OffsetOnly    string           // LIMIT literal written when only OFFSET is set; empty if OFFSET may stand alone
	RowValues     bool             // (a, b) = (?, ?) and (a, b) IN ((?, ?), ...)
	Returning     bool             // RETURNING clause
	RowLocking    bool             // SELECT ... FOR UPDATE
	MutationLimit bool             // ORDER BY / LIMIT on UPDATE and DELETE
	Limit         LimitStyle       // LIMIT/OFFSET rendering
	Ignore        IgnoreStyle      // INSERT conflict skipping
	Dates         DateStyle        // date part extraction
	Placeholder   PlaceholderStyle // native bind placeholder
}
