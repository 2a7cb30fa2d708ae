/*
Package bigmath implements arbitrary-precision arithmetic on decimal numerals
represented as strings.

Every operand is validated before use: it must be an optionally signed
sequence of decimal digits with at most one decimal point, such as "12",
"-0.5", "+7." or ".25".
Exponents, spaces, thousands separators and special values are rejected
with an error wrapping [ErrInvalidNumericInput].

Results are canonical numerals: no plus sign, no redundant leading zeros
and no negative zero.
Addition, subtraction and multiplication are exact and keep the natural
scale of the operands; division is truncated toward zero at the requested
scale.

The package is stateless and safe for concurrent use.
*/
package bigmath

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidNumericInput is returned when an operand is not a valid
	// decimal numeral.
	ErrInvalidNumericInput = errors.New("invalid numeric input")
	// ErrDivisionByZero is returned when a divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNegativeExponent is returned by [Pow] for exponents below zero.
	ErrNegativeExponent = errors.New("negative exponent")
	errNegativeScale    = errors.New("negative scale")
)

// NumericError records a string that is not a valid decimal numeral.
// It wraps [ErrInvalidNumericInput].
type NumericError struct {
	Value string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidNumericInput, e.Value)
}

func (e *NumericError) Unwrap() error {
	return ErrInvalidNumericInput
}

// Validate returns an error if s is not a valid decimal numeral.
func Validate(s string) error {
	if !valid(s) {
		return &NumericError{Value: s}
	}
	return nil
}

// ValidateInt returns an error if s is not a valid integer numeral.
func ValidateInt(s string) error {
	if !valid(s) || strings.IndexByte(s, '.') >= 0 {
		return &NumericError{Value: s}
	}
	return nil
}

func valid(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, dpoint := 0, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dpoint:
			dpoint = true
		default:
			return false
		}
	}
	return digits > 0
}

// parse converts a validated numeral to a decimal with the same scale.
func parse(s string) (decimal.Decimal, error) {
	if err := Validate(s); err != nil {
		return decimal.Decimal{}, err
	}
	orig, neg := s, false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	coef, ok := new(big.Int).SetString("0"+whole+frac, 10)
	if !ok {
		return decimal.Decimal{}, &NumericError{Value: orig}
	}
	if neg {
		coef.Neg(coef)
	}
	return decimal.NewFromBigInt(coef, -int32(len(frac))), nil //nolint:gosec
}

// format returns the canonical numeral of d, keeping its scale.
func format(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}
	return d.String()
}

// Canonical returns the canonical form of numeral a.
// The scale of a is preserved, so "+007.50" becomes "7.50".
func Canonical(a string) (string, error) {
	d, err := parse(a)
	if err != nil {
		return "", err
	}
	return format(d), nil
}

// Add returns the exact sum a + b.
func Add(a, b string) (string, error) {
	d, e, err := parse2(a, b)
	if err != nil {
		return "", err
	}
	return format(d.Add(e)), nil
}

// Sub returns the exact difference a - b.
func Sub(a, b string) (string, error) {
	d, e, err := parse2(a, b)
	if err != nil {
		return "", err
	}
	return format(d.Sub(e)), nil
}

// Mul returns the exact product a * b.
// The scale of the result is the sum of the scales of the operands.
func Mul(a, b string) (string, error) {
	d, e, err := parse2(a, b)
	if err != nil {
		return "", err
	}
	return format(d.Mul(e)), nil
}

// Quo returns the quotient a / b truncated toward zero to the given number
// of digits after the decimal point.
//
// Quo returns an error if:
//   - any operand is not a valid numeral;
//   - the divisor is 0;
//   - the scale is negative.
func Quo(a, b string, scale int) (string, error) {
	q, _, err := QuoRem(a, b, scale)
	return q, err
}

// QuoRem returns the quotient q and remainder r such that a = b * q + r,
// where q is truncated toward zero to the given number of digits after
// the decimal point and r has the same sign as the dividend a.
// See also [Quo].
func QuoRem(a, b string, scale int) (q, r string, err error) {
	d, e, err := parse2(a, b)
	if err != nil {
		return "", "", err
	}
	if scale < 0 {
		return "", "", fmt.Errorf("computing [%v / %v]: %w", a, b, errNegativeScale)
	}
	if e.IsZero() {
		return "", "", fmt.Errorf("computing [%v / %v]: %w", a, b, ErrDivisionByZero)
	}
	quo, rem := d.QuoRem(e, int32(scale)) //nolint:gosec
	return quo.StringFixed(int32(scale)), format(rem), nil //nolint:gosec
}

// Cmp compares numerals and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
func Cmp(a, b string) (int, error) {
	d, e, err := parse2(a, b)
	if err != nil {
		return 0, err
	}
	return d.Cmp(e), nil
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func Sign(a string) (int, error) {
	d, err := parse(a)
	if err != nil {
		return 0, err
	}
	return d.Sign(), nil
}

// Pow returns base raised to a non-negative integer exponent.
// The result is exact; its scale is the scale of base multiplied by exp.
func Pow(base string, exp int) (string, error) {
	d, err := parse(base)
	if err != nil {
		return "", err
	}
	if exp < 0 {
		return "", fmt.Errorf("computing [%v ^ %v]: %w", base, exp, ErrNegativeExponent)
	}
	res := decimal.New(1, 0)
	for exp > 0 {
		if exp&1 == 1 {
			res = res.Mul(d)
		}
		d = d.Mul(d)
		exp >>= 1
	}
	return format(res), nil
}

// Pow10 returns 10^n for a non-negative n.
func Pow10(n int) string {
	if n <= 0 {
		return "1"
	}
	return "1" + strings.Repeat("0", n)
}

// Shift returns a * 10^n.
// A positive n moves the decimal point to the right and a negative n
// moves it to the left; no digits are lost.
func Shift(a string, n int) (string, error) {
	d, err := parse(a)
	if err != nil {
		return "", err
	}
	return format(d.Mul(decimal.New(1, int32(n)))), nil //nolint:gosec
}

// Truncate returns numeral a with the digits beyond the given scale
// dropped without carry.
// The result has exactly scale digits after the decimal point, zero-padded
// to the right if necessary.
func Truncate(a string, scale int) (string, error) {
	d, err := parse(a)
	if err != nil {
		return "", err
	}
	if scale < 0 {
		return "", fmt.Errorf("truncating %v: %w", a, errNegativeScale)
	}
	return d.Truncate(int32(scale)).StringFixed(int32(scale)), nil //nolint:gosec
}

func parse2(a, b string) (decimal.Decimal, decimal.Decimal, error) {
	d, err := parse(a)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	e, err := parse(b)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	return d, e, nil
}
