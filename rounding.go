package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/exactmoney/money/bigmath"
)

// RoundingMode selects how digits beyond the target precision are discarded.
// The zero value is [HalfUp].
type RoundingMode uint8

const (
	// HalfUp rounds to the nearest neighbor, ties away from zero.
	HalfUp RoundingMode = iota
	// HalfDown rounds to the nearest neighbor, ties toward zero.
	HalfDown
	// HalfEven rounds to the nearest neighbor, ties to the even neighbor
	// (banker's rounding).
	HalfEven
	// HalfOdd rounds to the nearest neighbor, ties to the odd neighbor.
	HalfOdd
	// Up rounds away from zero.
	Up
	// Down rounds toward zero (truncation).
	Down
	// Ceiling rounds toward positive infinity.
	Ceiling
	// Floor rounds toward negative infinity.
	Floor
)

var errUnknownRoundingMode = errors.New("unknown rounding mode")

var modeNames = [...]string{
	HalfUp:   "half_up",
	HalfDown: "half_down",
	HalfEven: "half_even",
	HalfOdd:  "half_odd",
	Up:       "up",
	Down:     "down",
	Ceiling:  "ceiling",
	Floor:    "floor",
}

// ParseRoundingMode converts a string to a rounding mode.
// The input is case-insensitive and may use '-' instead of '_',
// for example "half_even", "HALF_EVEN" or "half-even".
func ParseRoundingMode(s string) (RoundingMode, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for m, n := range modeNames {
		if n == name {
			return RoundingMode(m), nil //nolint:gosec
		}
	}
	return 0, fmt.Errorf("%w: %q", errUnknownRoundingMode, s)
}

// IsValid returns true if m is one of the defined rounding modes.
func (m RoundingMode) IsValid() bool {
	return int(m) < len(modeNames)
}

// String implements the [fmt.Stringer] interface.
func (m RoundingMode) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("RoundingMode(%d)", uint8(m))
	}
	return modeNames[m]
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (m RoundingMode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("marshaling %v: %w", m, errUnknownRoundingMode)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseRoundingMode].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (m *RoundingMode) UnmarshalText(text []byte) error {
	var err error
	*m, err = ParseRoundingMode(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", HalfUp, err)
	}
	return nil
}

// Round returns numeral value rounded to the given number of digits after
// the decimal point using rounding mode m.
// The result always has exactly precision digits after the decimal point,
// or no decimal point at all if precision is 0.
// Rounding works on the magnitude of the value and reapplies the sign, so
// "-0.005" rounded to 2 digits with [HalfUp] is "-0.01".
// A result equal to zero carries no sign.
//
// Round returns an error if the value is not a valid numeral, the precision
// is negative, or the rounding mode is unknown.
func Round(value string, precision int, m RoundingMode) (string, error) {
	r, err := round(value, precision, m)
	if err != nil {
		return "", fmt.Errorf("rounding %q to %v digit(s) using %v: %w", value, precision, m, err)
	}
	return r, nil
}

// tie classifies the dropped digits relative to half a unit of the last
// retained digit.
type tie int

const (
	exact tie = iota // nothing dropped
	belowHalf
	atHalf
	aboveHalf
)

func classify(dropped string) tie {
	if strings.Trim(dropped, "0") == "" {
		return exact
	}
	switch first, rest := dropped[0], strings.Trim(dropped[1:], "0"); {
	case first > '5', first == '5' && rest != "":
		return aboveHalf
	case first == '5':
		return atHalf
	default:
		return belowHalf
	}
}

func round(value string, precision int, m RoundingMode) (string, error) {
	if err := bigmath.Validate(value); err != nil {
		return "", err
	}
	if precision < 0 {
		return "", fmt.Errorf("negative precision %v", precision)
	}
	if !m.IsValid() {
		return "", errUnknownRoundingMode
	}

	neg, whole, frac := splitNumeral(value)
	if len(frac) < precision {
		frac += strings.Repeat("0", precision-len(frac))
	}
	kept, dropped := whole+frac[:precision], frac[precision:]

	var digits string
	var err error
	if m == HalfUp {
		// Add half a unit of the last retained digit, then truncate.
		half, err := bigmath.Shift("5", -(precision + 1))
		if err != nil {
			return "", err
		}
		sum, err := bigmath.Add(whole+"."+frac, half)
		if err != nil {
			return "", err
		}
		digits, err = bigmath.Truncate(sum, precision)
		if err != nil {
			return "", err
		}
		digits = strings.Replace(digits, ".", "", 1)
	} else {
		digits = kept
		if increment(m, classify(dropped), neg, kept[len(kept)-1]) {
			digits, err = bigmath.Add(kept, "1")
			if err != nil {
				return "", err
			}
		}
	}
	return joinNumeral(neg, digits, precision), nil
}

// increment reports whether the magnitude must be increased by one unit
// of the last retained digit.
func increment(m RoundingMode, t tie, neg bool, last byte) bool {
	if t == exact {
		return false
	}
	odd := (last-'0')%2 == 1
	switch m {
	case Down:
		return false
	case Up:
		return true
	case Ceiling:
		return !neg
	case Floor:
		return neg
	case HalfUp:
		return t >= atHalf
	case HalfDown:
		return t == aboveHalf
	case HalfEven:
		return t == aboveHalf || t == atHalf && odd
	case HalfOdd:
		return t == aboveHalf || t == atHalf && !odd
	}
	return false
}

// splitNumeral splits a valid numeral into its sign, integer digits
// and fractional digits.
// The integer part is never empty.
func splitNumeral(s string) (neg bool, whole, frac string) {
	switch s[0] {
	case '-':
		neg, s = true, s[1:]
	case '+':
		s = s[1:]
	}
	whole, frac, _ = strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	return neg, whole, frac
}

// joinNumeral places the decimal point precision digits from the right of
// a magnitude and applies the sign.
func joinNumeral(neg bool, digits string, precision int) string {
	digits = strings.TrimLeft(digits, "0")
	if len(digits) <= precision {
		digits = strings.Repeat("0", precision-len(digits)+1) + digits
	}
	zero := strings.Trim(digits, "0") == ""
	if precision > 0 {
		digits = digits[:len(digits)-precision] + "." + digits[len(digits)-precision:]
	}
	if neg && !zero {
		return "-" + digits
	}
	return digits
}

// quoSticky returns a / b at the given scratch scale.
// If the division is inexact, a nonzero digit is appended beyond the
// scratch scale, so that any later rounding to at most scale digits sees
// the discarded remainder.
func quoSticky(a, b string, scale int) (string, error) {
	q, r, err := bigmath.QuoRem(a, b, scale)
	if err != nil {
		return "", err
	}
	rs, err := bigmath.Sign(r)
	if err != nil {
		return "", err
	}
	if rs == 0 {
		return q, nil
	}
	bs, err := bigmath.Sign(b)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(q, "-") && rs*bs < 0 {
		q = "-" + q
	}
	if scale == 0 {
		q += "."
	}
	return q + "1", nil
}
