package money

import (
	"fmt"

	"github.com/exactmoney/money/bigmath"
)

// MaxPrecision is the largest number of fractional digits a [Policy] accepts.
const MaxPrecision = 36

// Policy holds the settings that govern an [Amount]: the number of
// fractional digits of its human-readable form, the rounding mode used when
// no mode is passed explicitly, and whether negative amounts may exist.
//
// A policy is fixed when an amount is constructed and travels with it;
// every amount derived from it shares the same policy.
type Policy struct {
	Precision     int          // digits after the decimal point, 0 to MaxPrecision
	Rounding      RoundingMode // default rounding mode
	AllowNegative bool         // permit amounts below zero
}

// DefaultPolicy is two fractional digits, [HalfUp] rounding and no
// negative amounts.
var DefaultPolicy = Policy{
	Precision:     2,
	Rounding:      HalfUp,
	AllowNegative: false,
}

// Validate returns an error wrapping [ErrInvalidPolicy] if the precision is
// out of range or the rounding mode is unknown.
func (p Policy) Validate() error {
	if p.Precision < 0 || p.Precision > MaxPrecision {
		return fmt.Errorf("%w: precision %v is not within [0, %v]", ErrInvalidPolicy, p.Precision, MaxPrecision)
	}
	if !p.Rounding.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, p.Rounding)
	}
	return nil
}

// WithPrecision returns a copy of the policy with the given precision.
func (p Policy) WithPrecision(precision int) Policy {
	p.Precision = precision
	return p
}

// WithRounding returns a copy of the policy with the given rounding mode.
func (p Policy) WithRounding(m RoundingMode) Policy {
	p.Rounding = m
	return p
}

// WithNegative returns a copy of the policy that allows or rejects
// negative amounts.
func (p Policy) WithNegative(allow bool) Policy {
	p.AllowNegative = allow
	return p
}

// scaleFactor returns 10^precision.
func (p Policy) scaleFactor() string {
	f, err := bigmath.Pow("10", p.Precision)
	if err != nil {
		panic(fmt.Sprintf("Pow(10, %v) failed: %v", p.Precision, err))
	}
	return f
}

// String implements the [fmt.Stringer] interface.
func (p Policy) String() string {
	return fmt.Sprintf("precision=%v rounding=%v negative=%v", p.Precision, p.Rounding, p.AllowNegative)
}
