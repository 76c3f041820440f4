package condql

// Where is a WHERE clause. It embeds a Conditions, so every condition method
// is available on it; chained calls continue on the embedded builder.
type Where struct {
	*Conditions
}

// NewWhere creates an empty WHERE clause.
func NewWhere(d Dialect) *Where {
	return &Where{Conditions: New(d)}
}

// WhereToSQL renders the clause, prefixed with WHERE when keyword is set.
// An empty clause renders "" and no params.
func (w *Where) WhereToSQL(keyword bool) (string, []any, error) {
	return clauseSQL("WHERE", w.Conditions, keyword)
}

// Having is a HAVING clause.
type Having struct {
	*Conditions
}

// NewHaving creates an empty HAVING clause.
func NewHaving(d Dialect) *Having {
	return &Having{Conditions: New(d)}
}

// HavingToSQL renders the clause, prefixed with HAVING when keyword is set.
func (h *Having) HavingToSQL(keyword bool) (string, []any, error) {
	return clauseSQL("HAVING", h.Conditions, keyword)
}

// On is the ON clause of a join.
type On struct {
	*Conditions
}

// NewOn creates an empty ON clause.
func NewOn(d Dialect) *On {
	return &On{Conditions: New(d)}
}

// OnToSQL renders the clause, prefixed with ON when keyword is set.
func (o *On) OnToSQL(keyword bool) (string, []any, error) {
	return clauseSQL("ON", o.Conditions, keyword)
}

// clauseSQL renders c and prefixes keyword. Nested clauses go through the
// embedded ToSQL instead, so they never carry their keyword.
func clauseSQL(keyword string, c *Conditions, withKeyword bool) (string, []any, error) {
	sql, params, err := c.ToSQL()
	if err != nil {
		return "", nil, err
	}
	if sql == "" {
		return "", nil, nil
	}
	if withKeyword {
		sql = keyword + " " + sql
	}
	return sql, params, nil
}
