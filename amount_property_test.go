package money

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/exactmoney/money/bigmath"
	"pgregory.net/rapid"
)

var allModes = []RoundingMode{HalfUp, HalfDown, HalfEven, HalfOdd, Up, Down, Ceiling, Floor}

// genPolicy generates valid policies with up to 6 fractional digits.
func genPolicy(allowNegative bool) *rapid.Generator[Policy] {
	return rapid.Custom(func(t *rapid.T) Policy {
		return Policy{
			Precision:     rapid.IntRange(0, 6).Draw(t, "precision"),
			Rounding:      rapid.SampledFrom(allModes).Draw(t, "rounding"),
			AllowNegative: allowNegative,
		}
	})
}

// genAmount generates amounts in a reasonable range of minor units.
func genAmount(p Policy, label string) *rapid.Generator[Amount] {
	return rapid.Custom(func(t *rapid.T) Amount {
		lo := int64(-1_000_000_000_000)
		if !p.AllowNegative {
			lo = 0
		}
		u := rapid.Int64Range(lo, 1_000_000_000_000).Draw(t, label)
		a, err := NewAmountFromMinorUnits(u, p)
		if err != nil {
			t.Fatalf("NewAmountFromMinorUnits(%v, %v) failed: %v", u, p, err)
		}
		return a
	})
}

func TestProperty_MinorUnitsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPolicy(true).Draw(t, "policy")
		u := rapid.Int64().Draw(t, "units")

		a, err := NewAmountFromMinorUnits(u, p)
		if err != nil {
			t.Fatalf("NewAmountFromMinorUnits(%v, %v) failed: %v", u, p, err)
		}
		got, ok := a.MinorUnitsInt64()
		if !ok || got != u {
			t.Fatalf("round-trip failed: units=%d → amount=%v → units=%d, %v", u, a, got, ok)
		}
	})
}

func TestProperty_StringRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPolicy(true).Draw(t, "policy")
		a := genAmount(p, "a").Draw(t, "amount")

		b, err := ParseAmount(a.String(), p)
		if err != nil {
			t.Fatalf("ParseAmount(%q, %v) failed: %v", a, p, err)
		}
		if b != a {
			t.Fatalf("round-trip failed: %q → %q", a, b)
		}
		if got := a.HumanAmount().Scale(); got != p.Precision {
			t.Fatalf("%q has %d fractional digits, want %d", a, got, p.Precision)
		}
	})
}

func TestProperty_AddSub(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPolicy(true).Draw(t, "policy")
		a := genAmount(p, "a").Draw(t, "a")
		b := genAmount(p, "b").Draw(t, "b")
		c := genAmount(p, "c").Draw(t, "c")

		ab, err := a.Add(b)
		if err != nil {
			t.Fatalf("%q.Add(%q) failed: %v", a, b, err)
		}
		ba, err := b.Add(a)
		if err != nil {
			t.Fatalf("%q.Add(%q) failed: %v", b, a, err)
		}
		if ab != ba {
			t.Fatalf("%q + %q = %q, but %q + %q = %q", a, b, ab, b, a, ba)
		}

		abc, err := ab.Add(c)
		if err != nil {
			t.Fatalf("%q.Add(%q) failed: %v", ab, c, err)
		}
		bc, err := b.Add(c)
		if err != nil {
			t.Fatalf("%q.Add(%q) failed: %v", b, c, err)
		}
		abc2, err := a.Add(bc)
		if err != nil {
			t.Fatalf("%q.Add(%q) failed: %v", a, bc, err)
		}
		if abc != abc2 {
			t.Fatalf("(%q + %q) + %q = %q, but %q + (%q + %q) = %q", a, b, c, abc, a, b, c, abc2)
		}

		back, err := ab.Sub(b)
		if err != nil {
			t.Fatalf("%q.Sub(%q) failed: %v", ab, b, err)
		}
		if back != a {
			t.Fatalf("(%q + %q) - %q = %q, want %q", a, b, b, back, a)
		}

		z, err := a.Add(a.Zero())
		if err != nil {
			t.Fatalf("%q.Add(0) failed: %v", a, err)
		}
		if z != a {
			t.Fatalf("%q + 0 = %q", a, z)
		}
	})
}

func TestProperty_NegativeGuard(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPolicy(false).Draw(t, "policy")

		u := rapid.Int64Range(math.MinInt64, -1).Draw(t, "units")
		if _, err := NewAmountFromMinorUnits(u, p); !errors.Is(err, ErrNegativeAmount) {
			t.Fatalf("NewAmountFromMinorUnits(%v, %v) = %v, want %v", u, p, err, ErrNegativeAmount)
		}

		a := genAmount(p, "a").Draw(t, "a")
		d := rapid.Int64Range(1, 1_000_000).Draw(t, "delta")
		delta, err := NewAmountFromMinorUnits(d, p)
		if err != nil {
			t.Fatalf("NewAmountFromMinorUnits(%v, %v) failed: %v", d, p, err)
		}
		b, err := a.Add(delta)
		if err != nil {
			t.Fatalf("%q.Add(%q) failed: %v", a, delta, err)
		}
		if _, err := a.Sub(b); !errors.Is(err, ErrNegativeAmount) {
			t.Fatalf("%q.Sub(%q) = %v, want %v", a, b, err, ErrNegativeAmount)
		}
	})
}

func TestProperty_MulQuoInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPolicy(true).Draw(t, "policy")
		a := genAmount(p, "a").Draw(t, "a")
		k := NumeralFromInt64(rapid.Int64Range(1, 1000).Draw(t, "factor"))

		prod, err := a.Mul(k)
		if err != nil {
			t.Fatalf("%q.Mul(%v) failed: %v", a, k, err)
		}
		got, err := prod.Quo(k)
		if err != nil {
			t.Fatalf("%q.Quo(%v) failed: %v", prod, k, err)
		}
		if got != a {
			t.Fatalf("(%q * %v) / %v = %q, want %q", a, k, k, got, a)
		}
	})
}

func TestProperty_QuoByZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPolicy(true).Draw(t, "policy")
		a := genAmount(p, "a").Draw(t, "a")
		m := rapid.SampledFrom(allModes).Draw(t, "mode")
		zero := MustParseNumeral("0." + strings.Repeat("0", rapid.IntRange(0, 5).Draw(t, "zeros")))

		if _, err := a.QuoRound(zero, m); !errors.Is(err, ErrDivisionByZero) {
			t.Fatalf("%q.QuoRound(%v, %v) = %v, want %v", a, zero, m, err, ErrDivisionByZero)
		}
	})
}

func TestProperty_Split(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPolicy(true).Draw(t, "policy")
		a := genAmount(p, "a").Draw(t, "a")
		parts := rapid.IntRange(1, 20).Draw(t, "parts")

		got, err := a.Split(parts)
		if err != nil {
			t.Fatalf("%q.Split(%v) failed: %v", a, parts, err)
		}
		if len(got) != parts {
			t.Fatalf("%q.Split(%v) returned %v parts", a, parts, len(got))
		}
		sum := a.Zero()
		for _, part := range got {
			sum, err = sum.Add(part)
			if err != nil {
				t.Fatalf("%q.Add(%q) failed: %v", sum, part, err)
			}
			diff, err := bigmath.Sub(got[0].MinorUnits().String(), part.MinorUnits().String())
			if err != nil {
				t.Fatalf("bigmath.Sub failed: %v", err)
			}
			if d := strings.TrimPrefix(diff, "-"); d != "0" && d != "1" {
				t.Fatalf("%q.Split(%v) parts %q and %q differ by %v minor units", a, parts, got[0], part, diff)
			}
		}
		if sum != a {
			t.Fatalf("sum of %q.Split(%v) = %q", a, parts, sum)
		}
	})
}

func TestProperty_RoundBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Int64().Draw(t, "coef")
		scale := rapid.IntRange(0, 8).Draw(t, "scale")
		prec := rapid.IntRange(0, 6).Draw(t, "precision")

		value, err := bigmath.Shift(strconv.FormatInt(n, 10), -scale)
		if err != nil {
			t.Fatalf("bigmath.Shift failed: %v", err)
		}
		floor, err := Round(value, prec, Floor)
		if err != nil {
			t.Fatalf("Round(%q, %v, %v) failed: %v", value, prec, Floor, err)
		}
		ceil, err := Round(value, prec, Ceiling)
		if err != nil {
			t.Fatalf("Round(%q, %v, %v) failed: %v", value, prec, Ceiling, err)
		}
		if c, _ := bigmath.Cmp(floor, value); c > 0 {
			t.Fatalf("floor %q > value %q", floor, value)
		}
		if c, _ := bigmath.Cmp(ceil, value); c < 0 {
			t.Fatalf("ceiling %q < value %q", ceil, value)
		}
		ulp, _ := bigmath.Shift("1", -prec)
		width, _ := bigmath.Sub(ceil, floor)
		if c0, _ := bigmath.Sign(width); c0 != 0 {
			if c1, _ := bigmath.Cmp(width, ulp); c1 != 0 {
				t.Fatalf("Round(%q, %v) brackets [%q, %q] are not one unit apart", value, prec, floor, ceil)
			}
		}

		for _, m := range allModes {
			got, err := Round(value, prec, m)
			if err != nil {
				t.Fatalf("Round(%q, %v, %v) failed: %v", value, prec, m, err)
			}
			lo, _ := bigmath.Cmp(got, floor)
			hi, _ := bigmath.Cmp(got, ceil)
			if lo != 0 && hi != 0 {
				t.Fatalf("Round(%q, %v, %v) = %q, want %q or %q", value, prec, m, got, floor, ceil)
			}
			if _, _, frac := splitNumeral(got); len(frac) != prec {
				t.Fatalf("Round(%q, %v, %v) = %q has %d fractional digits", value, prec, m, got, len(frac))
			}
		}
	})
}
