package money

import (
	"errors"
	"fmt"

	"github.com/exactmoney/money/bigmath"
)

var (
	// ErrInvalidNumericInput is returned when an amount, factor or rate is not
	// a valid decimal numeral.
	// The concrete error is a [*NumericError] holding the offending value.
	ErrInvalidNumericInput = bigmath.ErrInvalidNumericInput
	// ErrDivisionByZero is returned when a divisor is zero.
	ErrDivisionByZero = bigmath.ErrDivisionByZero
	// ErrNegativeAmount is returned when an operation would produce a negative
	// amount and the policy does not allow negative amounts.
	// The concrete error is a [*NegativeAmountError].
	ErrNegativeAmount = errors.New("negative amount rejected")
	// ErrPrecisionMismatch is returned when amounts with different precisions
	// are added or subtracted.
	ErrPrecisionMismatch = errors.New("precision mismatch")
	// ErrInvalidPolicy is returned when a policy has a precision out of range
	// or an unknown rounding mode.
	ErrInvalidPolicy = errors.New("invalid policy")
)

// NumericError records a string that is not a valid decimal numeral.
type NumericError = bigmath.NumericError

// NegativeAmountError records a negative amount rejected by a [Policy].
// It wraps [ErrNegativeAmount].
type NegativeAmountError struct {
	Amount string // human-readable amount, e.g. "-1.00"
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("%v: %v", ErrNegativeAmount, e.Amount)
}

func (e *NegativeAmountError) Unwrap() error {
	return ErrNegativeAmount
}
