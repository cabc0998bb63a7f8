package engine

import (
	"errors"
	"fmt"
)

// ConvertError represents an element-level failure surfaced by the driver.
//
// The three codes map onto the error taxonomy:
//   - Overflow: value outside the representable tick range
//   - Parse failure: value or format unparseable
//   - Type mismatch: the element's kind is not convertible at all
//
// Type mismatches normally never reach callers (they trigger the object
// fallback); the code exists for the fallback's own raise path.
type ConvertError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Value is a rendering of the offending element.
	Value string

	// Pos is the element's position in the input array.
	Pos int

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes conversion errors.
type ErrorCode string

const (
	// ErrCodeOverflow indicates a value outside the representable range.
	ErrCodeOverflow ErrorCode = "OVERFLOW"

	// ErrCodeParse indicates an unparseable value or format.
	ErrCodeParse ErrorCode = "PARSE"

	// ErrCodeTypeMismatch indicates a kind that cannot be converted at all.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Error implements the error interface.
func (e *ConvertError) Error() string {
	return fmt.Sprintf("%s: cannot convert %s at position %d", e.Code, e.Value, e.Pos)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *ConvertError) Unwrap() error {
	return e.Err
}

// IsOverflow returns true if the error is an out-of-range error.
// Uses errors.As to handle wrapped errors.
func IsOverflow(err error) bool {
	var ce *ConvertError
	return errors.As(err, &ce) && ce.Code == ErrCodeOverflow
}

// IsParseError returns true if the error is an unparseable-value error.
func IsParseError(err error) bool {
	var ce *ConvertError
	return errors.As(err, &ce) && ce.Code == ErrCodeParse
}

// IsTypeMismatch returns true if the error is a type-mismatch error.
func IsTypeMismatch(err error) bool {
	var ce *ConvertError
	return errors.As(err, &ce) && ce.Code == ErrCodeTypeMismatch
}

// Sentinel causes attached to strict-mode parse failures.
var (
	errStrictNumeric = errors.New("bare numerics not allowed with strict ISO 8601")
	errNotISO        = errors.New("string is not strict ISO 8601")
)

func newOverflowError(pos int, value string, cause error) *ConvertError {
	return &ConvertError{Code: ErrCodeOverflow, Value: value, Pos: pos, Err: cause}
}

func newParseError(pos int, value string, cause error) *ConvertError {
	return &ConvertError{Code: ErrCodeParse, Value: value, Pos: pos, Err: cause}
}
