package money

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/exactmoney/money/bigmath"
	"github.com/govalues/decimal"
)

// Numeral is a validated decimal numeral in human-readable units, such as
// "19.99" or "-0.5".
// It is used for amounts before scaling, for factors, divisors and rates.
// The zero value is "0".
//
// Numeral keeps the scale it was written with, so "1.50" and "1.5" are
// numerically equal but have different string representations.
type Numeral struct {
	s string // canonical numeral, see bigmath.Canonical
}

// ParseNumeral converts a string to a numeral.
// The string must be an optionally signed decimal numeral without exponent,
// for example "12", "-0.05", "+3." or ".25".
//
// ParseNumeral returns an error wrapping [ErrInvalidNumericInput] otherwise.
func ParseNumeral(s string) (Numeral, error) {
	c, err := bigmath.Canonical(s)
	if err != nil {
		return Numeral{}, err
	}
	return Numeral{s: c}, nil
}

// MustParseNumeral is like [ParseNumeral] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding numerals.
func MustParseNumeral(s string) Numeral {
	n, err := ParseNumeral(s)
	if err != nil {
		panic(fmt.Sprintf("ParseNumeral(%q) failed: %v", s, err))
	}
	return n
}

// NumeralFromInt64 converts an integer to a numeral.
func NumeralFromInt64(n int64) Numeral {
	return Numeral{s: strconv.FormatInt(n, 10)}
}

// NumeralFromFloat64 converts a float to a numeral using the shortest
// decimal representation that round-trips to the same float,
// so 0.1 becomes "0.1".
// The float is never used in arithmetic.
//
// NumeralFromFloat64 returns an error if the float is a special value
// (NaN or Inf).
func NumeralFromFloat64(f float64) (Numeral, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Numeral{}, fmt.Errorf("converting float: %w", &NumericError{Value: strconv.FormatFloat(f, 'g', -1, 64)})
	}
	return ParseNumeral(strconv.FormatFloat(f, 'f', -1, 64))
}

// NumeralFromDecimal converts a [decimal.Decimal] to a numeral,
// keeping its scale.
// See also method [Numeral.Decimal].
func NumeralFromDecimal(d decimal.Decimal) Numeral {
	return MustParseNumeral(d.String())
}

// Decimal converts the numeral to a [decimal.Decimal].
//
// Decimal returns an error if the numeral has more digits than
// [decimal.MaxPrec].
func (n Numeral) Decimal() (decimal.Decimal, error) {
	d, err := decimal.Parse(n.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v: %w", n, err)
	}
	return d, nil
}

// String implements the [fmt.Stringer] interface.
func (n Numeral) String() string {
	if n.s == "" {
		return "0"
	}
	return n.s
}

// Sign returns:
//
//	-1 if n < 0
//	 0 if n = 0
//	+1 if n > 0
func (n Numeral) Sign() int {
	return mustSign(n.String())
}

// IsZero returns true if n = 0.
func (n Numeral) IsZero() bool {
	return n.Sign() == 0
}

// Scale returns the number of digits after the decimal point.
func (n Numeral) Scale() int {
	_, _, frac := splitNumeral(n.String())
	return len(frac)
}

// Cmp compares numerals numerically and returns:
//
//	-1 if n < m
//	 0 if n = m
//	+1 if n > m
func (n Numeral) Cmp(m Numeral) int {
	return mustCmp(n.String(), m.String())
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (n Numeral) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseNumeral].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (n *Numeral) UnmarshalText(text []byte) error {
	var err error
	*n, err = ParseNumeral(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Numeral{}, err)
	}
	return nil
}

// MinorUnits is an arbitrary-precision integer count of minor units
// (e.g. cents for a currency with two fractional digits).
// The zero value is 0.
type MinorUnits struct {
	s string // canonical integer
}

// ParseMinorUnits converts a string to minor units.
// The string must be an optionally signed integer numeral.
//
// ParseMinorUnits returns an error wrapping [ErrInvalidNumericInput] otherwise.
func ParseMinorUnits(s string) (MinorUnits, error) {
	if err := bigmath.ValidateInt(s); err != nil {
		return MinorUnits{}, err
	}
	c, err := bigmath.Canonical(s)
	if err != nil {
		return MinorUnits{}, err
	}
	return MinorUnits{s: c}, nil
}

// MustParseMinorUnits is like [ParseMinorUnits] but panics if the string cannot be parsed.
func MustParseMinorUnits(s string) MinorUnits {
	u, err := ParseMinorUnits(s)
	if err != nil {
		panic(fmt.Sprintf("ParseMinorUnits(%q) failed: %v", s, err))
	}
	return u
}

// MinorUnitsFromInt64 converts an integer to minor units.
func MinorUnitsFromInt64(n int64) MinorUnits {
	return MinorUnits{s: strconv.FormatInt(n, 10)}
}

// MinorUnitsFromBigInt converts a big integer to minor units.
// A nil pointer is treated as zero.
func MinorUnitsFromBigInt(n *big.Int) MinorUnits {
	if n == nil {
		return MinorUnits{}
	}
	return MinorUnits{s: n.String()}
}

// String implements the [fmt.Stringer] interface.
func (u MinorUnits) String() string {
	if u.s == "" {
		return "0"
	}
	return u.s
}

// Int64 returns the minor units as an int64.
// If the value cannot be represented as an int64, then false is returned.
func (u MinorUnits) Int64() (int64, bool) {
	n, err := strconv.ParseInt(u.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// BigInt returns the minor units as a newly allocated big integer.
func (u MinorUnits) BigInt() *big.Int {
	n, ok := new(big.Int).SetString(u.String(), 10)
	if !ok {
		panic(fmt.Sprintf("SetString(%q) failed", u))
	}
	return n
}

// Sign returns:
//
//	-1 if u < 0
//	 0 if u = 0
//	+1 if u > 0
func (u MinorUnits) Sign() int {
	return mustSign(u.String())
}

// Cmp compares minor units and returns:
//
//	-1 if u < v
//	 0 if u = v
//	+1 if u > v
func (u MinorUnits) Cmp(v MinorUnits) int {
	return mustCmp(u.String(), v.String())
}

// mustSign and mustCmp are used with canonical numerals only.
func mustSign(s string) int {
	n, err := bigmath.Sign(s)
	if err != nil {
		panic(fmt.Sprintf("Sign(%q) failed: %v", s, err))
	}
	return n
}

func mustCmp(a, b string) int {
	c, err := bigmath.Cmp(a, b)
	if err != nil {
		panic(fmt.Sprintf("Cmp(%q, %q) failed: %v", a, b, err))
	}
	return c
}
