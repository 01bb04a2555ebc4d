package models

import (
	"encoding/json"
	"errors"
	"reflect"

	"github.com/shopspring/decimal"
)

// Exponent bounds are checked before Round, which rescales the coefficient.
const (
	maxAmountExponent = maxAmountDigits - 2
	minAmountExponent = -20
)

// ErrAmountRange reports an amount outside the storable range.
var ErrAmountRange = errors.New("amount must have at most 10 digits and 2 decimal places")

// Amount is a monetary value kept at two decimal places. It accepts JSON
// numbers or strings and always renders as a fixed two-decimal string.
type Amount struct {
	decimal.Decimal
}

// NewAmount parses s, rounding to cents.
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return bounded(d)
}

func bounded(d decimal.Decimal) (Amount, error) {
	exp := int(d.Exponent())
	if exp > maxAmountExponent || exp < minAmountExponent || d.NumDigits()+exp > maxAmountDigits {
		return Amount{}, ErrAmountRange
	}
	return Amount{d.Round(2)}, nil
}

// MustAmount is NewAmount for literals known to be valid.
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ZeroAmount is 0.00.
func ZeroAmount() Amount {
	return Amount{decimal.Zero}
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{a.Decimal.Add(b.Decimal)}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{a.Decimal.Sub(b.Decimal)}
}

// String renders the amount with exactly two decimals.
func (a Amount) String() string {
	return a.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.StringFixed(2) + `"`), nil
}

// UnmarshalJSON reports malformed or out of range input as a
// *json.UnmarshalTypeError so the decoder attaches the field name.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return amountTypeError(data)
	}
	parsed, err := bounded(d)
	if err != nil {
		return amountTypeError(data)
	}
	*a = parsed
	return nil
}

func amountTypeError(data []byte) error {
	return &json.UnmarshalTypeError{Value: "amount " + string(data), Type: reflect.TypeOf(Amount{})}
}
