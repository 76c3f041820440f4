package types

import "strings"

// Operator represents a comparison operator.
// Input is case-insensitive; Normalize folds it to the canonical form.
type Operator string

const (
	// Infer asks the builder to pick = or IN from the shape of the value.
	Infer Operator = ""

	// Basic comparison operators.
	EQ    Operator = "="
	NE    Operator = "<>"
	NotEQ Operator = "!="
	GT    Operator = ">"
	GE    Operator = ">="
	LT    Operator = "<"
	LE    Operator = "<="

	// Extended operators.
	IN         Operator = "IN"
	NotIn      Operator = "NOT IN"
	LIKE       Operator = "LIKE"
	NotLike    Operator = "NOT LIKE"
	Between    Operator = "BETWEEN"
	NotBetween Operator = "NOT BETWEEN"
)

var knownOperators = map[Operator]bool{
	EQ: true, NE: true, NotEQ: true, GT: true, GE: true, LT: true, LE: true,
	IN: true, NotIn: true, LIKE: true, NotLike: true, Between: true, NotBetween: true,
}

// Normalize upper-cases the operator and collapses inner whitespace,
// so "not  in" and "NOT IN" compare equal.
func (op Operator) Normalize() Operator {
	return Operator(strings.Join(strings.Fields(strings.ToUpper(string(op))), " "))
}

// Valid reports whether op is Infer or a known operator.
// The operator must already be normalized.
func (op Operator) Valid() bool {
	return op == Infer || knownOperators[op]
}

// IsList reports whether the operator takes a list on its right-hand side.
func (op Operator) IsList() bool {
	return op == IN || op == NotIn
}

// IsRange reports whether the operator is BETWEEN or NOT BETWEEN.
func (op Operator) IsRange() bool {
	return op == Between || op == NotBetween
}

// Scalar returns the single-value counterpart of a list operator.
func (op Operator) Scalar() Operator {
	switch op {
	case IN:
		return EQ
	case NotIn:
		return NE
	default:
		return op
	}
}
