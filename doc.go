/*
Package money implements exact monetary values stored as integer numbers of
minor units.
It leverages the arbitrary-precision arithmetic on decimal numerals of its
bigmath subpackage and never converts an amount to a binary floating-point
number.

# Features

  - Immutable monetary values, ensuring safe usage across multiple goroutines
  - Arbitrary-precision minor units with no overflow
  - Configurable precision, from 0 (no subdivision) to [MaxPrecision] digits
  - Eight rounding modes, including half-even and half-odd, computed on
    decimal digits
  - A negative-amount guard enforced on every constructed and derived value
  - Conversion to and from database columns, JSON and text

# Representation

An [Amount] consists of [MinorUnits] and a [Policy].
Minor units are an integer count of the smallest unit of a currency, such as
cents.
The policy defines the precision of the human-readable amount, the default
[RoundingMode] and whether negative amounts are allowed.
The scale factor between minor and major units is always 10^precision.

Human-readable numerals, factors, divisors and rates are represented by the
[Numeral] type, so that they cannot be confused with minor units.

# Operations

Add and Sub are exact.
Mul and Quo operate on minor units: the product is exact and the quotient is
computed with extra scratch digits, then the result is rounded to a whole
number of minor units.
Percent computes (amount * rate) / 100 in major units and rounds to the
precision of the policy.
Each of them has a variant taking an explicit rounding mode; otherwise the
rounding mode of the policy is used.

# Rounding

The [Round] function rounds a decimal numeral to a number of fractional
digits.
It inspects the discarded digits directly to decide ties, so
"0.125" rounds to "0.12" and "0.135" rounds to "0.14" with [HalfEven].

# Errors

Errors are returned, never logged, and can be identified with [errors.Is]:

  - [ErrInvalidNumericInput] when an input is not a decimal numeral;
  - [ErrDivisionByZero] when a divisor is zero;
  - [ErrNegativeAmount] when a negative amount is constructed or derived under
    a policy that rejects negative amounts;
  - [ErrPrecisionMismatch] when amounts of different precisions are added or
    subtracted;
  - [ErrInvalidPolicy] when a policy is out of range.

Must* constructors panic instead of returning an error.
*/
package money
