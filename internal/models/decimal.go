package models

import "github.com/shopspring/decimal"

// Money is a decimal that renders as a fixed-point string with exactly two
// fraction digits, matching the NUMERIC(…,2) columns it round-trips through.
// "150.00" stays "150.00"; nothing ever passes through a binary float.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal as Money.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON renders the value as a quoted fixed-point string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

// NullMoney is a nullable Money.
type NullMoney struct {
	decimal.NullDecimal
}

// MarshalJSON renders null, or the value as a quoted fixed-point string.
func (m NullMoney) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + m.Decimal.StringFixed(2) + `"`), nil
}
