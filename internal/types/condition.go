package types

import "strings"

// LogicOperator represents how conditions are combined.
type LogicOperator string

const (
	AND LogicOperator = "AND"
	OR  LogicOperator = "OR"
)

// Normalize upper-cases the connector.
func (l LogicOperator) Normalize() LogicOperator {
	return LogicOperator(strings.ToUpper(strings.TrimSpace(string(l))))
}

// Valid reports whether l is AND or OR. l must already be normalized.
func (l LogicOperator) Valid() bool {
	return l == AND || l == OR
}

// Direction represents sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// JoinType represents the type of SQL join.
type JoinType string

const (
	InnerJoin JoinType = "INNER JOIN"
	LeftJoin  JoinType = "LEFT JOIN"
	RightJoin JoinType = "RIGHT JOIN"
	CrossJoin JoinType = "CROSS JOIN"
)
