package condql

import (
	"errors"
	"fmt"

	"github.com/zoobzio/condql/internal/render"
)

// Sentinel errors. Every typed error below matches its sentinel through
// errors.Is.
var (
	// ErrWrongRowValuesCount is returned when a row of values does not have
	// as many entries as the row of columns it is compared against.
	ErrWrongRowValuesCount = errors.New("condql: wrong row values count")

	// ErrInvalidOperatorForArray is returned when a list value is used with an
	// operator that only accepts a single value.
	ErrInvalidOperatorForArray = errors.New("condql: invalid operator for array value")

	// ErrInvalidOperatorForScalar is returned when a list operator or a row
	// comparison receives a single value.
	ErrInvalidOperatorForScalar = errors.New("condql: invalid operator for scalar value")

	// ErrUndefinedDialect is returned when quoting is required but no dialect
	// is attached.
	ErrUndefinedDialect = errors.New("condql: undefined dialect")

	// ErrUnknownConstraintPosition is returned when a constraint column is
	// accessed outside its column range.
	ErrUnknownConstraintPosition = errors.New("condql: unknown constraint position")

	// ErrInvalidOperator is returned for operators outside the supported set.
	ErrInvalidOperator = errors.New("condql: invalid operator")

	// ErrInvalidValue is returned when a value or column reference cannot be
	// used at its position.
	ErrInvalidValue = errors.New("condql: invalid value")

	// ErrUnsupportedFeature matches every UnsupportedFeatureError.
	ErrUnsupportedFeature = render.ErrUnsupportedFeature
)

// UnsupportedFeatureError indicates a feature not supported by the dialect.
type UnsupportedFeatureError = render.UnsupportedFeatureError

// RowValuesCountError reports a row arity mismatch.
type RowValuesCountError struct {
	Expected int
	Actual   int
	Position string
}

// Error returns the error string.
func (e *RowValuesCountError) Error() string {
	return fmt.Sprintf("condql: wrong row values count at %s: expected %d, got %d",
		e.Position, e.Expected, e.Actual)
}

// Is reports whether the target error matches ErrWrongRowValuesCount.
func (e *RowValuesCountError) Is(err error) bool {
	return err == ErrWrongRowValuesCount
}

// OperatorError reports an operator that does not fit the value shape at a
// position. Err is one of ErrInvalidOperatorForArray,
// ErrInvalidOperatorForScalar or ErrInvalidOperator.
type OperatorError struct {
	Operator Operator
	Position string
	Err      error
}

// Error returns the error string.
func (e *OperatorError) Error() string {
	switch e.Err {
	case ErrInvalidOperatorForArray:
		return fmt.Sprintf("condql: operator %q cannot compare a list at %s", string(e.Operator), e.Position)
	case ErrInvalidOperatorForScalar:
		return fmt.Sprintf("condql: a list is required at %s for operator %q", e.Position, string(e.Operator))
	default:
		return fmt.Sprintf("condql: invalid operator %q at %s", string(e.Operator), e.Position)
	}
}

// Is reports whether the target error matches the wrapped sentinel.
func (e *OperatorError) Is(err error) bool {
	return err == e.Err
}

// Unwrap returns the wrapped sentinel.
func (e *OperatorError) Unwrap() error {
	return e.Err
}

// DialectError reports a component used without a dialect.
type DialectError struct {
	Component string
}

// Error returns the error string.
func (e *DialectError) Error() string {
	return fmt.Sprintf("condql: %s has no dialect attached", e.Component)
}

// Is reports whether the target error matches ErrUndefinedDialect.
func (e *DialectError) Is(err error) bool {
	return err == ErrUndefinedDialect
}

// ConstraintPositionError reports an out of range constraint column.
type ConstraintPositionError struct {
	Constraint string
	Position   int
}

// Error returns the error string.
func (e *ConstraintPositionError) Error() string {
	return fmt.Sprintf("condql: constraint %q has no column at position %d", e.Constraint, e.Position)
}

// Is reports whether the target error matches ErrUnknownConstraintPosition.
func (e *ConstraintPositionError) Is(err error) bool {
	return err == ErrUnknownConstraintPosition
}

// ValueError reports a value or column reference that cannot be used.
type ValueError struct {
	Position string
	Err      error
}

// Error returns the error string.
func (e *ValueError) Error() string {
	return fmt.Sprintf("condql: invalid value at %s: %v", e.Position, e.Err)
}

// Is reports whether the target error matches ErrInvalidValue.
func (e *ValueError) Is(err error) bool {
	return err == ErrInvalidValue
}

// Unwrap returns the underlying cause.
func (e *ValueError) Unwrap() error {
	return e.Err
}

// IsWrongRowValuesCount returns true if the error is a row arity mismatch.
func IsWrongRowValuesCount(err error) bool {
	if err == nil {
		return false
	}
	var e *RowValuesCountError
	return errors.As(err, &e) || errors.Is(err, ErrWrongRowValuesCount)
}

// IsInvalidOperator returns true if the error is any operator error.
func IsInvalidOperator(err error) bool {
	if err == nil {
		return false
	}
	var e *OperatorError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidOperator)
}

// IsUndefinedDialect returns true if the error is a missing dialect.
func IsUndefinedDialect(err error) bool {
	if err == nil {
		return false
	}
	var e *DialectError
	return errors.As(err, &e) || errors.Is(err, ErrUndefinedDialect)
}

// IsUnsupportedFeature returns true if the dialect does not support a
// requested feature.
func IsUnsupportedFeature(err error) bool {
	return err != nil && errors.Is(err, ErrUnsupportedFeature)
}

func rowCountError(expected, actual int, pos string) error {
	return &RowValuesCountError{Expected: expected, Actual: actual, Position: pos}
}

func operatorError(op Operator, pos string, sentinel error) error {
	return &OperatorError{Operator: op, Position: pos, Err: sentinel}
}

func valueError(pos string, err error) error {
	return &ValueError{Position: pos, Err: err}
}
