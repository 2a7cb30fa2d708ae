package money

import (
	"fmt"
	"strings"

	"github.com/exactmoney/money/bigmath"
	"github.com/govalues/decimal"
)

// scratchDigits is the number of extra fractional digits kept by
// intermediate quotients before they are rounded.
const scratchDigits = 2

// Amount type represents a monetary amount as an integer number of minor
// units together with the [Policy] it was created with.
// Its zero value corresponds to 0 under [DefaultPolicy].
//
// Amount is immutable: every operation returns a new amount, so amounts are
// safe for concurrent use by multiple goroutines.
type Amount struct {
	units  MinorUnits // amount in minor units, canonical
	policy Policy     // ignored while units is the zero value
}

// newAmountUnsafe creates a new amount without checking the policy or the sign.
// Use it only if you are absolutely sure that the arguments are valid.
func newAmountUnsafe(u MinorUnits, p Policy) Amount {
	return Amount{units: MinorUnits{s: u.String()}, policy: p}
}

// newAmountSafe creates a new amount, validates the policy and applies
// the negative guard.
func newAmountSafe(u MinorUnits, p Policy) (Amount, error) {
	if err := p.Validate(); err != nil {
		return Amount{}, err
	}
	if err := guardNegative(u, p); err != nil {
		return Amount{}, err
	}
	return newAmountUnsafe(u, p), nil
}

// guardNegative rejects negative minor units unless the policy allows them.
func guardNegative(u MinorUnits, p Policy) error {
	if u.Sign() < 0 && !p.AllowNegative {
		return &NegativeAmountError{Amount: humanAmount(u, p.Precision).String()}
	}
	return nil
}

// NewAmount returns an amount equal to the human-readable numeral scaled by
// 10^precision.
// Digits beyond the precision of the policy are truncated,
// so "1.005" with a precision of 2 is "1.00".
//
// NewAmount returns an error if:
//   - the policy is not valid;
//   - the amount is negative and the policy does not allow negative amounts.
func NewAmount(amount Numeral, p Policy) (Amount, error) {
	a, err := newAmount(amount, p)
	if err != nil {
		return Amount{}, fmt.Errorf("converting %v: %w", amount, err)
	}
	return a, nil
}

func newAmount(amount Numeral, p Policy) (Amount, error) {
	if err := p.Validate(); err != nil {
		return Amount{}, err
	}
	scaled, err := bigmath.Mul(amount.String(), p.scaleFactor())
	if err != nil {
		return Amount{}, err
	}
	units, err := bigmath.Truncate(scaled, 0)
	if err != nil {
		return Amount{}, err
	}
	return newAmountSafe(MinorUnits{s: units}, p)
}

// ParseAmount converts a human-readable numeral to an amount.
// See also constructors [ParseNumeral] and [NewAmount].
//
// ParseAmount returns an error if:
//   - the string is not a valid numeral;
//   - the policy is not valid;
//   - the amount is negative and the policy does not allow negative amounts.
func ParseAmount(amount string, p Policy) (Amount, error) {
	n, err := ParseNumeral(amount)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount: %w", err)
	}
	a, err := newAmount(n, p)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount: %w", err)
	}
	return a, nil
}

// MustParseAmount is like [ParseAmount] but panics if the amount cannot be constructed.
// This function simplifies safe initialization of global variables holding amounts.
func MustParseAmount(amount string, p Policy) Amount {
	a, err := ParseAmount(amount, p)
	if err != nil {
		panic(fmt.Sprintf("ParseAmount(%q, %v) failed: %v", amount, p, err))
	}
	return a
}

// NewAmountFromInt64 converts a whole number of major units to an amount.
func NewAmountFromInt64(amount int64, p Policy) (Amount, error) {
	a, err := newAmount(NumeralFromInt64(amount), p)
	if err != nil {
		return Amount{}, fmt.Errorf("converting integer: %w", err)
	}
	return a, nil
}

// NewAmountFromFloat64 converts a float to an amount.
// The float is first converted to its shortest decimal representation,
// see [NumeralFromFloat64], and then treated like [ParseAmount].
func NewAmountFromFloat64(amount float64, p Policy) (Amount, error) {
	n, err := NumeralFromFloat64(amount)
	if err != nil {
		return Amount{}, err
	}
	a, err := newAmount(n, p)
	if err != nil {
		return Amount{}, fmt.Errorf("converting float: %w", err)
	}
	return a, nil
}

// NewAmountFromDecimal converts a [decimal.Decimal] to an amount.
// See also method [Amount.Decimal].
func NewAmountFromDecimal(amount decimal.Decimal, p Policy) (Amount, error) {
	a, err := newAmount(NumeralFromDecimal(amount), p)
	if err != nil {
		return Amount{}, fmt.Errorf("converting decimal: %w", err)
	}
	return a, nil
}

// NewAmountFromMinorUnits converts an integer, representing minor units
// (e.g. cents, pennies, fens), to an amount without any scaling.
// See also method [Amount.MinorUnits].
//
// NewAmountFromMinorUnits returns an error if the policy is not valid or the
// amount is negative and the policy does not allow negative amounts.
func NewAmountFromMinorUnits(units int64, p Policy) (Amount, error) {
	return NewAmountFromBigMinorUnits(MinorUnitsFromInt64(units), p)
}

// NewAmountFromBigMinorUnits is like [NewAmountFromMinorUnits] but accepts
// minor units of arbitrary size.
func NewAmountFromBigMinorUnits(units MinorUnits, p Policy) (Amount, error) {
	a, err := newAmountSafe(units, p)
	if err != nil {
		return Amount{}, fmt.Errorf("converting minor units: %w", err)
	}
	return a, nil
}

// Zero returns an amount equal to 0 under policy p.
// See also method [Amount.Zero].
func Zero(p Policy) (Amount, error) {
	if err := p.Validate(); err != nil {
		return Amount{}, err
	}
	return newAmountUnsafe(MinorUnits{}, p), nil
}

// Policy returns the policy the amount was created with.
func (a Amount) Policy() Policy {
	if a.units.s == "" {
		return DefaultPolicy
	}
	return a.policy
}

// Precision returns the number of digits after the decimal point of the
// human-readable amount.
func (a Amount) Precision() int {
	return a.Policy().Precision
}

// ScaleFactor returns 10^precision, the number of minor units in one
// major unit.
func (a Amount) ScaleFactor() MinorUnits {
	return MinorUnits{s: a.Policy().scaleFactor()}
}

// MinorUnits returns the exact amount in minor units.
// See also constructor [NewAmountFromBigMinorUnits].
func (a Amount) MinorUnits() MinorUnits {
	return a.units
}

// MinorUnitsInt64 returns the amount in minor units as an int64.
// If the result cannot be represented as an int64, then false is returned.
// See also constructor [NewAmountFromMinorUnits].
func (a Amount) MinorUnitsInt64() (int64, bool) {
	return a.units.Int64()
}

// HumanAmount returns the amount in major units with exactly
// [Amount.Precision] digits after the decimal point.
func (a Amount) HumanAmount() Numeral {
	return humanAmount(a.units, a.Precision())
}

func humanAmount(u MinorUnits, precision int) Numeral {
	f, err := bigmath.Pow("10", precision)
	if err != nil {
		panic(fmt.Sprintf("Pow(10, %v) failed: %v", precision, err))
	}
	// Minor units are already aligned to the scale factor, the quotient is exact.
	q, err := bigmath.Quo(u.String(), f, precision)
	if err != nil {
		panic(fmt.Sprintf("Quo(%q, %q, %v) failed: %v", u, f, precision, err))
	}
	return Numeral{s: q}
}

// Decimal converts the amount to a [decimal.Decimal].
// See also constructor [NewAmountFromDecimal].
//
// Decimal returns an error if the amount has more digits than [decimal.MaxPrec].
func (a Amount) Decimal() (decimal.Decimal, error) {
	return a.HumanAmount().Decimal()
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func (a Amount) Sign() int {
	return a.units.Sign()
}

// IsNeg returns:
//
//	true  if a < 0
//	false otherwise
func (a Amount) IsNeg() bool {
	return a.Sign() < 0
}

// IsPos returns:
//
//	true  if a > 0
//	false otherwise
func (a Amount) IsPos() bool {
	return a.Sign() > 0
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
func (a Amount) IsZero() bool {
	return a.Sign() == 0
}

// Abs returns the absolute value of the amount.
func (a Amount) Abs() Amount {
	return newAmountUnsafe(MinorUnits{s: strings.TrimPrefix(a.units.String(), "-")}, a.Policy())
}

// Neg returns an amount with the opposite sign.
//
// Neg returns an error if the result is negative and the policy does not
// allow negative amounts.
func (a Amount) Neg() (Amount, error) {
	s := a.units.String()
	switch {
	case a.IsZero():
		return a, nil
	case strings.HasPrefix(s, "-"):
		s = s[1:]
	default:
		s = "-" + s
	}
	b, err := newAmountSafe(MinorUnits{s: s}, a.Policy())
	if err != nil {
		return Amount{}, fmt.Errorf("computing [-%v]: %w", a, err)
	}
	return b, nil
}

// Zero returns an amount with a value of 0, having the same policy as amount a.
func (a Amount) Zero() Amount {
	return newAmountUnsafe(MinorUnits{}, a.Policy())
}

// Add returns the exact sum of amounts a and b.
//
// Add returns an error if:
//   - amounts have different precisions;
//   - the result is negative and the policy does not allow negative amounts.
func (a Amount) Add(b Amount) (Amount, error) {
	c, err := a.add(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v + %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) add(b Amount) (Amount, error) {
	if !a.SamePrecision(b) {
		return Amount{}, ErrPrecisionMismatch
	}
	u, err := bigmath.Add(a.units.String(), b.units.String())
	if err != nil {
		return Amount{}, err
	}
	return newAmountSafe(MinorUnits{s: u}, a.Policy())
}

// Sub returns the exact difference between amounts a and b.
// A difference that crosses zero is rejected immediately unless the policy
// allows negative amounts.
//
// Sub returns an error if:
//   - amounts have different precisions;
//   - the result is negative and the policy does not allow negative amounts.
func (a Amount) Sub(b Amount) (Amount, error) {
	c, err := a.sub(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v - %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) sub(b Amount) (Amount, error) {
	if !a.SamePrecision(b) {
		return Amount{}, ErrPrecisionMismatch
	}
	u, err := bigmath.Sub(a.units.String(), b.units.String())
	if err != nil {
		return Amount{}, err
	}
	return newAmountSafe(MinorUnits{s: u}, a.Policy())
}

// Mul returns the product of amount a and factor e, rounded to a whole
// number of minor units using the rounding mode of the policy.
// See also method [Amount.MulRound].
//
// Mul returns an error if the result is negative and the policy does not
// allow negative amounts.
func (a Amount) Mul(e Numeral) (Amount, error) {
	return a.MulRound(e, a.Policy().Rounding)
}

// MulRound is like [Amount.Mul] but uses rounding mode m.
func (a Amount) MulRound(e Numeral, m RoundingMode) (Amount, error) {
	c, err := a.mul(e, m)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, e, err)
	}
	return c, nil
}

func (a Amount) mul(e Numeral, m RoundingMode) (Amount, error) {
	// The product of minor units and factor is exact.
	prod, err := bigmath.Mul(a.units.String(), e.String())
	if err != nil {
		return Amount{}, err
	}
	u, err := round(prod, 0, m)
	if err != nil {
		return Amount{}, err
	}
	return newAmountSafe(MinorUnits{s: u}, a.Policy())
}

// Quo returns the quotient of amount a and divisor e, rounded to a whole
// number of minor units using the rounding mode of the policy.
// See also methods [Amount.QuoRound] and [Amount.Split].
//
// Quo returns an error if:
//   - the divisor is 0;
//   - the result is negative and the policy does not allow negative amounts.
func (a Amount) Quo(e Numeral) (Amount, error) {
	return a.QuoRound(e, a.Policy().Rounding)
}

// QuoRound is like [Amount.Quo] but uses rounding mode m.
func (a Amount) QuoRound(e Numeral, m RoundingMode) (Amount, error) {
	c, err := a.quo(e, m)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v / %v]: %w", a, e, err)
	}
	return c, nil
}

func (a Amount) quo(e Numeral, m RoundingMode) (Amount, error) {
	if e.IsZero() {
		return Amount{}, ErrDivisionByZero
	}
	q, err := quoSticky(a.units.String(), e.String(), scratchDigits)
	if err != nil {
		return Amount{}, err
	}
	u, err := round(q, 0, m)
	if err != nil {
		return Amount{}, err
	}
	return newAmountSafe(MinorUnits{s: u}, a.Policy())
}

// Percent returns rate percent of amount a, that is a * rate / 100,
// rounded to the precision of the policy using its rounding mode.
// The intermediate result is computed in major units.
// See also method [Amount.PercentRound].
//
// Percent returns an error if the result is negative and the policy does not
// allow negative amounts.
func (a Amount) Percent(rate Numeral) (Amount, error) {
	return a.PercentRound(rate, a.Policy().Rounding)
}

// PercentRound is like [Amount.Percent] but uses rounding mode m.
func (a Amount) PercentRound(rate Numeral, m RoundingMode) (Amount, error) {
	c, err := a.percent(rate, m)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v%%]: %w", a, rate, err)
	}
	return c, nil
}

func (a Amount) percent(rate Numeral, m RoundingMode) (Amount, error) {
	p := a.Policy()
	prod, err := bigmath.Mul(a.HumanAmount().String(), rate.String())
	if err != nil {
		return Amount{}, err
	}
	q, err := quoSticky(prod, "100", p.Precision+scratchDigits)
	if err != nil {
		return Amount{}, err
	}
	r, err := round(q, p.Precision, m)
	if err != nil {
		return Amount{}, err
	}
	return newAmount(Numeral{s: r}, p)
}

// Split returns a slice of amounts that sum up to the original amount,
// ensuring the parts are as equal as possible.
// If the original amount cannot be divided equally among the specified number
// of parts, the leftover minor units are distributed among the first parts
// of the slice, one each.
// See also method [Amount.Quo].
//
// Split returns an error if the number of parts is not a positive integer.
func (a Amount) Split(parts int) ([]Amount, error) {
	r, err := a.split(parts)
	if err != nil {
		return nil, fmt.Errorf("splitting %v into %v parts: %w", a, parts, err)
	}
	return r, nil
}

func (a Amount) split(parts int) ([]Amount, error) {
	if parts <= 0 {
		return nil, fmt.Errorf("number of parts must be positive")
	}
	par := NumeralFromInt64(int64(parts))

	// Quotient and remainder in minor units
	quo, rem, err := bigmath.QuoRem(a.units.String(), par.String(), 0)
	if err != nil {
		return nil, err
	}
	ulp := "1"
	if a.IsNeg() {
		ulp = "-1"
	}

	res := make([]Amount, parts)
	for i := 0; i < parts; i++ {
		u := quo
		// Remainder distribution
		if mustSign(rem) != 0 {
			u, err = bigmath.Add(u, ulp)
			if err != nil {
				return nil, err
			}
			rem, err = bigmath.Sub(rem, ulp)
			if err != nil {
				return nil, err
			}
		}
		res[i] = newAmountUnsafe(MinorUnits{s: u}, a.Policy())
	}
	return res, nil
}

// Round returns the amount rounded to the given number of digits after the
// decimal point, expressed again at the precision of the policy.
// For example, 12.345 with precision 3 rounded to 1 digit using [HalfUp]
// is 12.300.
// If the given number of digits is not less than the precision, the amount
// is returned unchanged.
//
// Round returns an error if the result is negative and the policy does not
// allow negative amounts.
func (a Amount) Round(digits int, m RoundingMode) (Amount, error) {
	p := a.Policy()
	if digits >= p.Precision {
		return a, nil
	}
	if digits < 0 {
		return Amount{}, fmt.Errorf("rounding %v: negative number of digits %v", a, digits)
	}
	r, err := round(a.HumanAmount().String(), digits, m)
	if err != nil {
		return Amount{}, fmt.Errorf("rounding %v: %w", a, err)
	}
	return newAmount(Numeral{s: r}, p)
}

// WithPolicy returns the amount expressed under policy p.
// If p has a smaller precision, the amount is rounded using the rounding
// mode of p; if it has a larger precision, the amount is zero-padded.
//
// WithPolicy returns an error if:
//   - the policy is not valid;
//   - the amount is negative and p does not allow negative amounts.
func (a Amount) WithPolicy(p Policy) (Amount, error) {
	if err := p.Validate(); err != nil {
		return Amount{}, err
	}
	r, err := round(a.HumanAmount().String(), p.Precision, p.Rounding)
	if err != nil {
		return Amount{}, err
	}
	b, err := newAmount(Numeral{s: r}, p)
	if err != nil {
		return Amount{}, fmt.Errorf("applying policy [%v] to %v: %w", p, a, err)
	}
	return b, nil
}

// SamePrecision returns true if amounts have the same precision.
func (a Amount) SamePrecision(b Amount) bool {
	return a.Precision() == b.Precision()
}

// Cmp compares amounts and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// Amounts with the same precision are compared by their minor units;
// otherwise their human-readable values are compared exactly.
func (a Amount) Cmp(b Amount) int {
	if a.SamePrecision(b) {
		return a.units.Cmp(b.units)
	}
	return a.HumanAmount().Cmp(b.HumanAmount())
}

// Equal returns true if a = b.
func (a Amount) Equal(b Amount) bool {
	return a.Cmp(b) == 0
}

// GreaterThan returns true if a > b.
func (a Amount) GreaterThan(b Amount) bool {
	return a.Cmp(b) > 0
}

// GreaterThanOrEqual returns true if a >= b.
func (a Amount) GreaterThanOrEqual(b Amount) bool {
	return a.Cmp(b) >= 0
}

// LessThan returns true if a < b.
func (a Amount) LessThan(b Amount) bool {
	return a.Cmp(b) < 0
}

// LessThanOrEqual returns true if a <= b.
func (a Amount) LessThanOrEqual(b Amount) bool {
	return a.Cmp(b) <= 0
}

// Min returns the smaller amount.
// See also method [Amount.Cmp].
func (a Amount) Min(b Amount) Amount {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger amount.
// See also method [Amount.Cmp].
func (a Amount) Max(b Amount) Amount {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// String implements the [fmt.Stringer] interface and returns the
// human-readable fixed-point representation of the amount, such as "12.30".
// Amounts with a precision of 0 are rendered as plain integers.
// See also method [Amount.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	return a.HumanAmount().String()
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example | Description           |
//	| ------ | ------- | --------------------- |
//	| %s, %v | 5.67    | Amount                |
//	| %q     | "5.67"  | Quoted amount         |
//	| %f     | 5.67    | Amount                |
//	| %d     | 567     | Amount in minor units |
//
// The '-', '+', ' ' and '0' format flags can be used with all verbs.
//
// Precision is only supported for the %f verb.
// The default precision is equal to the precision of the policy; a smaller
// precision rounds using the rounding mode of the policy.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (a Amount) Format(state fmt.State, verb rune) {
	var body string
	switch verb {
	case 'd', 'D':
		body = a.units.String()
	case 'f', 'F':
		body = a.String()
		p := a.Policy()
		if prec, ok := state.Precision(); ok && prec != p.Precision {
			r, err := round(body, prec, p.Rounding)
			if err == nil {
				body = r
			}
		}
	default:
		body = a.String()
	}

	// Arithmetic sign
	sign := ""
	if strings.HasPrefix(body, "-") {
		sign, body = "-", body[1:]
	} else if state.Flag('+') {
		sign = "+"
	} else if state.Flag(' ') {
		sign = " "
	}

	// Opening and closing quotes
	quote := ""
	if verb == 'q' || verb == 'Q' {
		quote = `"`
	}

	// Padding
	width := len(quote) + len(sign) + len(body) + len(quote)
	lspaces, lzeros, tspaces := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0'):
			lzeros = w - width
		default:
			lspaces = w - width
		}
	}

	var buf strings.Builder
	buf.WriteString(strings.Repeat(" ", lspaces))
	buf.WriteString(quote)
	buf.WriteString(sign)
	buf.WriteString(strings.Repeat("0", lzeros))
	buf.WriteString(body)
	buf.WriteString(quote)
	buf.WriteString(strings.Repeat(" ", tspaces))

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F', 'd', 'D':
		state.Write([]byte(buf.String()))
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(money.Amount="))
		state.Write([]byte(buf.String()))
		state.Write([]byte(")"))
	}
}
