package money

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/govalues/decimal"
)

func TestNumeral_ZeroValue(t *testing.T) {
	var n Numeral
	if got := n.String(); got != "0" {
		t.Errorf("Numeral{}.String() = %q, want %q", got, "0")
	}
	if !n.IsZero() {
		t.Errorf("Numeral{}.IsZero() = false, want true")
	}
	if got := n.Scale(); got != 0 {
		t.Errorf("Numeral{}.Scale() = %v, want 0", got)
	}
}

func TestParseNumeral(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s         string
			want      string
			wantScale int
		}{
			{"0", "0", 0},
			{"-0", "0", 0},
			{"-0.00", "0.00", 2},
			{"12", "12", 0},
			{"+007.50", "7.50", 2},
			{".25", "0.25", 2},
			{"3.", "3", 0},
			{"+3.", "3", 0},
			{"-0.05", "-0.05", 2},
			{"0000000000000000000000000000000000000001", "1", 0},
			{"123456789012345678901234567890.123456789", "123456789012345678901234567890.123456789", 9},
		}
		for _, tt := range tests {
			got, err := ParseNumeral(tt.s)
			if err != nil {
				t.Errorf("ParseNumeral(%q) failed: %v", tt.s, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("ParseNumeral(%q) = %q, want %q", tt.s, got, tt.want)
			}
			if got.Scale() != tt.wantScale {
				t.Errorf("ParseNumeral(%q).Scale() = %v, want %v", tt.s, got.Scale(), tt.wantScale)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{
			"", "+", "-", ".", "-.", "1.2.3", "1e5", "1E5", "NaN", "Inf", "-Inf",
			" 1", "1 ", "0x10", "1_000", "1,000", "--1", "+-1", "١",
		}
		for _, s := range tests {
			_, err := ParseNumeral(s)
			if !errors.Is(err, ErrInvalidNumericInput) {
				t.Errorf("ParseNumeral(%q) = %v, want %v", s, err, ErrInvalidNumericInput)
			}
		}
	})
}

func TestMustParseNumeral(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustParseNumeral(\"1e5\") did not panic")
		}
	}()
	MustParseNumeral("1e5")
}

func TestNumeralFromFloat64(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			f    float64
			want string
		}{
			{0, "0"},
			{math.Copysign(0, -1), "0"},
			{0.1, "0.1"},
			{19.99, "19.99"},
			{-2.5, "-2.5"},
			{1e21, "1000000000000000000000"},
			{1e-7, "0.0000001"},
		}
		for _, tt := range tests {
			got, err := NumeralFromFloat64(tt.f)
			if err != nil {
				t.Errorf("NumeralFromFloat64(%v) failed: %v", tt.f, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("NumeralFromFloat64(%v) = %q, want %q", tt.f, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := NumeralFromFloat64(f)
			if !errors.Is(err, ErrInvalidNumericInput) {
				t.Errorf("NumeralFromFloat64(%v) = %v, want %v", f, err, ErrInvalidNumericInput)
			}
		}
	})
}

func TestNumeral_Decimal(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		n := MustParseNumeral("-1.50")
		got, err := n.Decimal()
		if err != nil {
			t.Fatalf("%v.Decimal() failed: %v", n, err)
		}
		if want := decimal.MustParse("-1.50"); got != want {
			t.Errorf("%v.Decimal() = %v, want %v", n, got, want)
		}
		if back := NumeralFromDecimal(got); back != n {
			t.Errorf("NumeralFromDecimal(%v) = %v, want %v", got, back, n)
		}
	})

	t.Run("error", func(t *testing.T) {
		n := MustParseNumeral("12345678901234567890.5")
		if _, err := n.Decimal(); err == nil {
			t.Errorf("%v.Decimal() did not fail", n)
		}
	})
}

func TestNumeral_Cmp(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.50", "1.5", 0},
		{"-1", "1", -1},
		{"0.01", "0.001", 1},
		{"-0", "0.000", 0},
	}
	for _, tt := range tests {
		a, b := MustParseNumeral(tt.a), MustParseNumeral(tt.b)
		if got := a.Cmp(b); got != tt.want {
			t.Errorf("%v.Cmp(%v) = %v, want %v", a, b, got, tt.want)
		}
	}
}

func TestNumeral_Sign(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"-0.01", -1},
		{"0.00", 0},
		{"7", 1},
	}
	for _, tt := range tests {
		n := MustParseNumeral(tt.s)
		if got := n.Sign(); got != tt.want {
			t.Errorf("%v.Sign() = %v, want %v", n, got, tt.want)
		}
	}
}

func TestNumeral_Text(t *testing.T) {
	var n Numeral
	if err := n.UnmarshalText([]byte("+1.10")); err != nil {
		t.Fatalf("UnmarshalText(\"+1.10\") failed: %v", err)
	}
	data, err := n.MarshalText()
	if err != nil {
		t.Fatalf("%v.MarshalText() failed: %v", n, err)
	}
	if want := "1.10"; string(data) != want {
		t.Errorf("%v.MarshalText() = %s, want %s", n, data, want)
	}
	if err := n.UnmarshalText([]byte("x")); !errors.Is(err, ErrInvalidNumericInput) {
		t.Errorf("UnmarshalText(\"x\") = %v, want %v", err, ErrInvalidNumericInput)
	}
}

func TestParseMinorUnits(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s, want string
		}{
			{"0", "0"},
			{"-0", "0"},
			{"-0012", "-12"},
			{"+5", "5"},
			{"123456789012345678901234567890", "123456789012345678901234567890"},
		}
		for _, tt := range tests {
			got, err := ParseMinorUnits(tt.s)
			if err != nil {
				t.Errorf("ParseMinorUnits(%q) failed: %v", tt.s, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("ParseMinorUnits(%q) = %q, want %q", tt.s, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		for _, s := range []string{"", "1.0", "1.", ".1", "1e2", "abc"} {
			_, err := ParseMinorUnits(s)
			if !errors.Is(err, ErrInvalidNumericInput) {
				t.Errorf("ParseMinorUnits(%q) = %v, want %v", s, err, ErrInvalidNumericInput)
			}
		}
	})
}

func TestMinorUnits_Int64(t *testing.T) {
	tests := []struct {
		u      MinorUnits
		want   int64
		wantOk bool
	}{
		{MinorUnits{}, 0, true},
		{MinorUnitsFromInt64(math.MaxInt64), math.MaxInt64, true},
		{MinorUnitsFromInt64(math.MinInt64), math.MinInt64, true},
		{MustParseMinorUnits("9223372036854775808"), 0, false},
		{MustParseMinorUnits("-9223372036854775809"), 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.u.Int64()
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("%v.Int64() = %v, %v, want %v, %v", tt.u, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestMinorUnits_BigInt(t *testing.T) {
	want, _ := new(big.Int).SetString("-123456789012345678901234567890", 10)
	u := MinorUnitsFromBigInt(want)
	if got := u.BigInt(); got.Cmp(want) != 0 {
		t.Errorf("%v.BigInt() = %v, want %v", u, got, want)
	}
	if got := MinorUnitsFromBigInt(nil); got.String() != "0" {
		t.Errorf("MinorUnitsFromBigInt(nil) = %v, want 0", got)
	}
}

func TestMinorUnits_Cmp(t *testing.T) {
	tests := []struct {
		a, b MinorUnits
		want int
	}{
		{MinorUnits{}, MinorUnitsFromInt64(0), 0},
		{MinorUnitsFromInt64(-1), MinorUnits{}, -1},
		{MustParseMinorUnits("100000000000000000000"), MinorUnitsFromInt64(math.MaxInt64), 1},
	}
	for _, tt := range tests {
		if got := tt.a.Cmp(tt.b); got != tt.want {
			t.Errorf("%v.Cmp(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.a.Sign(); got != tt.a.Cmp(MinorUnits{}) {
			t.Errorf("%v.Sign() = %v", tt.a, got)
		}
	}
}
