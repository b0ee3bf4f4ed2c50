package cryptoval

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a given currency.
//
// The value is held as an exact decimal for the whole computation; the
// currency's fraction rules only apply when formatting.
type Money struct {
	value decimal.Decimal // in major units
	cur   string
}

// M builds a Money from an exact decimal value and a currency code.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// Currency returns the currency code.
func (m Money) Currency() string { return m.cur }

// Amount returns the exact decimal value in major units.
func (m Money) Amount() decimal.Decimal { return m.value }

func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsNegative() bool { return m.value.IsNegative() }

// currency resolves the full currency definition (symbol, fraction digits).
func (m Money) currency() money.Currency {
	// the Money constructor is the only way to get a never-nil currency.
	return *money.New(0, m.cur).Currency()
}

// String formats the value with the currency's symbol and fraction digits,
// e.g. "£1,234.56". This is the only place a value gets rounded.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString is like String with an explicit leading sign for gains.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
