// Package pgmoney converts amounts to and from PostgreSQL column values
// using the [pgtype] package of pgx.
//
// NUMERIC columns hold the human-readable amount, with the precision of the
// policy as the scale of the column; BIGINT columns hold minor units.
// Reading a value never rounds: a NUMERIC value with more fractional digits
// than the policy allows is rejected.
package pgmoney

import (
	"errors"
	"fmt"

	"github.com/exactmoney/money"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var (
	// ErrNull is returned when a NULL value is read into an amount.
	// Use the Null* functions for nullable columns.
	ErrNull = errors.New("null value")
	// ErrNotFinite is returned when a NUMERIC value is NaN or infinite.
	ErrNotFinite = errors.New("not a finite number")
	// ErrExcessDigits is returned when a NUMERIC value has more fractional
	// digits than the precision of the policy.
	ErrExcessDigits = errors.New("too many fractional digits")
	// ErrOverflow is returned when minor units do not fit into BIGINT.
	ErrOverflow = errors.New("minor units overflow int64")
)

// Numeric returns the amount as a NUMERIC value whose scale equals the
// precision of the amount, so 12.30 is stored as 1230 * 10^-2.
func Numeric(a money.Amount) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   a.MinorUnits().BigInt(),
		Exp:   -int32(a.Precision()), //nolint:gosec
		Valid: true,
	}
}

// FromNumeric converts a NUMERIC value to an amount under policy p.
//
// FromNumeric returns an error if:
//   - the value is NULL, NaN or infinite;
//   - the value has more fractional digits than the precision of p;
//   - the amount is negative and p does not allow negative amounts.
func FromNumeric(n pgtype.Numeric, p money.Policy) (money.Amount, error) {
	a, err := fromNumeric(n, p)
	if err != nil {
		return money.Amount{}, fmt.Errorf("converting numeric: %w", err)
	}
	return a, nil
}

func fromNumeric(n pgtype.Numeric, p money.Policy) (money.Amount, error) {
	switch {
	case !n.Valid:
		return money.Amount{}, ErrNull
	case n.NaN, n.InfinityModifier != pgtype.Finite:
		return money.Amount{}, ErrNotFinite
	}
	if err := p.Validate(); err != nil {
		return money.Amount{}, err
	}
	var d decimal.Decimal
	if n.Int != nil {
		d = decimal.NewFromBigInt(n.Int, n.Exp)
	}
	scaled := d.Shift(int32(p.Precision)) //nolint:gosec
	if !scaled.IsInteger() {
		return money.Amount{}, fmt.Errorf("%w: %v has more than %v fractional digits", ErrExcessDigits, d, p.Precision)
	}
	return money.NewAmountFromBigMinorUnits(money.MinorUnitsFromBigInt(scaled.BigInt()), p)
}

// NullNumeric is like [Numeric] but returns a NULL value for an invalid
// [money.NullAmount].
func NullNumeric(n money.NullAmount) pgtype.Numeric {
	if !n.Valid {
		return pgtype.Numeric{}
	}
	return Numeric(n.Amount)
}

// NullFromNumeric is like [FromNumeric] but maps NULL to an invalid
// [money.NullAmount].
func NullFromNumeric(n pgtype.Numeric, p money.Policy) (money.NullAmount, error) {
	if !n.Valid {
		return money.NullAmount{}, nil
	}
	a, err := FromNumeric(n, p)
	if err != nil {
		return money.NullAmount{}, err
	}
	return money.NullAmount{Amount: a, Valid: true}, nil
}

// Int8 returns the minor units of the amount as a BIGINT value.
//
// Int8 returns an error if the minor units do not fit into int64.
func Int8(a money.Amount) (pgtype.Int8, error) {
	n, ok := a.MinorUnitsInt64()
	if !ok {
		return pgtype.Int8{}, fmt.Errorf("converting %v to int8: %w", a.MinorUnits(), ErrOverflow)
	}
	return pgtype.Int8{Int64: n, Valid: true}, nil
}

// FromInt8 converts a BIGINT value holding minor units to an amount under
// policy p.
//
// FromInt8 returns an error if the value is NULL, or if the amount is
// negative and p does not allow negative amounts.
func FromInt8(v pgtype.Int8, p money.Policy) (money.Amount, error) {
	if !v.Valid {
		return money.Amount{}, fmt.Errorf("converting int8: %w", ErrNull)
	}
	return money.NewAmountFromMinorUnits(v.Int64, p)
}
