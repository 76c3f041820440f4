package condql

// Constraint describes a foreign key: Columns of Table reference RefColumns
// of RefTable, position by position.
type Constraint struct {
	Name       string
	Table      string
	Columns    []string
	RefTable   string
	RefColumns []string
}

// Column returns the local column at pos.
func (k Constraint) Column(pos int) (string, error) {
	if pos < 0 || pos >= len(k.Columns) {
		return "", &ConstraintPositionError{Constraint: k.Name, Position: pos}
	}
	return k.Columns[pos], nil
}

// RefColumn returns the referenced column at pos.
func (k Constraint) RefColumn(pos int) (string, error) {
	if pos < 0 || pos >= len(k.RefColumns) {
		return "", &ConstraintPositionError{Constraint: k.Name, Position: pos}
	}
	return k.RefColumns[pos], nil
}

// Pairs returns the local and referenced columns qualified by the given
// aliases. Empty aliases fall back to the table names. Every local column
// must have a referenced counterpart.
func (k Constraint) Pairs(alias, refAlias string) (local, ref []string, err error) {
	if alias == "" {
		alias = k.Table
	}
	if refAlias == "" {
		refAlias = k.RefTable
	}
	n := len(k.Columns)
	if len(k.RefColumns) > n {
		n = len(k.RefColumns)
	}
	local = make([]string, n)
	ref = make([]string, n)
	for i := 0; i < n; i++ {
		col, err := k.Column(i)
		if err != nil {
			return nil, nil, err
		}
		refCol, err := k.RefColumn(i)
		if err != nil {
			return nil, nil, err
		}
		local[i] = qualify(alias, col)
		ref[i] = qualify(refAlias, refCol)
	}
	return local, ref, nil
}

func qualify(alias, col string) string {
	if alias == "" {
		return col
	}
	return alias + "." + col
}

// Constraint relates the columns of k to its referenced columns:
//
//	Constraint(fk, "p", "u") -> `p`.`user_id` = `u`.`id`
//
// Composite keys render as a row relation.
func (c *Conditions) Constraint(k Constraint, alias, refAlias string) *Conditions {
	if c.err != nil {
		return c
	}
	local, ref, err := k.Pairs(alias, refAlias)
	if err != nil {
		return c.SetError(err)
	}
	if len(local) == 0 {
		return c.SetError(&ConstraintPositionError{Constraint: k.Name, Position: 0})
	}
	return c.Relation(local, ref)
}
