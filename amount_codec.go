package money

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText returns the human-readable amount, see [Amount.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// The text is parsed as a human-readable amount under the policy of the
// receiver, which is [DefaultPolicy] for the zero value.
// See also constructor [ParseAmount].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (a *Amount) UnmarshalText(text []byte) error {
	b, err := ParseAmount(string(text), a.Policy())
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	*a = b
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns the human-readable amount as a JSON string,
// so that no precision is lost by JSON number decoders.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Both JSON strings and JSON numbers are accepted; null is ignored.
// See also method [Amount.UnmarshalText].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	return a.UnmarshalText(data)
}

// Scan implements the [sql.Scanner] interface.
// The column must hold minor units, either as an integer or as the
// decimal text of an integer, which allows columns wider than int64.
// The policy of the receiver is kept; it is [DefaultPolicy] for the zero value.
// See also constructor [NewAmountFromBigMinorUnits].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (a *Amount) Scan(value any) error {
	var err error
	var u MinorUnits
	switch value := value.(type) {
	case int64:
		u = MinorUnitsFromInt64(value)
	case string:
		u, err = ParseMinorUnits(value)
	case []byte:
		u, err = ParseMinorUnits(string(value))
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T", Amount{}, NullAmount{}, Amount{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err == nil {
		var b Amount
		if b, err = newAmountSafe(u, a.Policy()); err == nil {
			*a = b
		}
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Amount{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// Value returns the minor units as an int64 if they fit, or as their
// decimal text otherwise.
// See also method [Amount.MinorUnits].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (a Amount) Value() (driver.Value, error) {
	if n, ok := a.MinorUnitsInt64(); ok {
		return n, nil
	}
	return a.MinorUnits().String(), nil
}

// NullAmount represents an amount that can be null.
// Its zero value is null.
// NullAmount is not thread-safe.
type NullAmount struct {
	Amount Amount
	Valid  bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Amount.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullAmount) Scan(value any) error {
	if value == nil {
		n.Amount = n.Amount.Zero()
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Amount.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Amount.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullAmount) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Amount.Value()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also method [Amount.UnmarshalJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (n *NullAmount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Amount = n.Amount.Zero()
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Amount.UnmarshalJSON(data)
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Amount.MarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (n NullAmount) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Amount.MarshalJSON()
}
