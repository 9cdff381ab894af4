// Package arith holds the error type shared by every layer of the numeric
// tower.
//
// Operations that cannot produce a value (a Natural below one, a missing
// predecessor, a zero divisor) return an *Error. Callers match on the code
// with errors.Is against the sentinel values below, or with HasCode.
package arith

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes arithmetic failures.
type ErrorCode string

const (
	// ErrCodeNonPositiveNatural indicates a Natural was requested for a value below one.
	ErrCodeNonPositiveNatural ErrorCode = "NON_POSITIVE_NATURAL"

	// ErrCodeNoPredecessor indicates a Natural subtraction walked below Base.
	ErrCodeNoPredecessor ErrorCode = "NO_PREDECESSOR"

	// ErrCodeQuotientBelowOne indicates a Natural division whose quotient is not a Natural.
	ErrCodeQuotientBelowOne ErrorCode = "QUOTIENT_BELOW_ONE"

	// ErrCodeDivisionByZero indicates a zero divisor at any layer.
	ErrCodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"

	// ErrCodeNegativeOperand indicates an operation that requires a non-negative argument.
	ErrCodeNegativeOperand ErrorCode = "NEGATIVE_OPERAND"

	// ErrCodeNonPositiveModulus indicates a modulo by zero or a negative value.
	ErrCodeNonPositiveModulus ErrorCode = "NON_POSITIVE_MODULUS"

	// ErrCodeUnimplemented marks a declared capability the tower cannot provide.
	ErrCodeUnimplemented ErrorCode = "UNIMPLEMENTED"

	// ErrCodeParse indicates malformed textual input.
	ErrCodeParse ErrorCode = "PARSE"

	// ErrCodeUnknownOp indicates a request for an operation that does not exist.
	ErrCodeUnknownOp ErrorCode = "UNKNOWN_OP"

	// ErrCodeArity indicates an operation received the wrong number of operands.
	ErrCodeArity ErrorCode = "ARITY"

	// ErrCodeMagnitudeExceeded indicates an operand too large for the unary representation.
	ErrCodeMagnitudeExceeded ErrorCode = "MAGNITUDE_EXCEEDED"
)

// Error is an arithmetic failure with a stable code.
type Error struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Op names the operation that failed, e.g. "natural.Sub".
	Op string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
// Op and Message are ignored so sentinels match any occurrence.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinels for errors.Is.
var (
	ErrNonPositiveNatural = &Error{Code: ErrCodeNonPositiveNatural, Message: "natural numbers start at one"}
	ErrNoPredecessor      = &Error{Code: ErrCodeNoPredecessor, Message: "predecessor of Base does not exist"}
	ErrQuotientBelowOne   = &Error{Code: ErrCodeQuotientBelowOne, Message: "quotient is less than one"}
	ErrDivisionByZero     = &Error{Code: ErrCodeDivisionByZero, Message: "division by zero"}
	ErrNegativeOperand    = &Error{Code: ErrCodeNegativeOperand, Message: "operand must be non-negative"}
	ErrNonPositiveModulus = &Error{Code: ErrCodeNonPositiveModulus, Message: "modulus must be positive"}
	ErrUnimplemented      = &Error{Code: ErrCodeUnimplemented, Message: "not implemented"}
	ErrParse              = &Error{Code: ErrCodeParse, Message: "malformed number"}
	ErrUnknownOp          = &Error{Code: ErrCodeUnknownOp, Message: "unknown operation"}
	ErrArity              = &Error{Code: ErrCodeArity, Message: "wrong number of operands"}
	ErrMagnitudeExceeded  = &Error{Code: ErrCodeMagnitudeExceeded, Message: "operand exceeds the magnitude limit"}
)

// New creates an *Error for op.
func New(code ErrorCode, op, message string) *Error {
	return &Error{Code: code, Op: op, Message: message}
}

// Newf creates an *Error for op with a formatted message.
func Newf(code ErrorCode, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// HasCode reports whether err (or anything it wraps) is an *Error with code.
func HasCode(err error, code ErrorCode) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
