package domain

import "github.com/shopspring/decimal"

// Currency is an ISO 4217 code accepted for expenses.
type Currency string

const (
	CurrencyAUD Currency = "AUD"
	CurrencyKRW Currency = "KRW"
)

// Currencies lists every supported Currency in display order.
var Currencies = []Currency{CurrencyAUD, CurrencyKRW}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	return c == CurrencyAUD || c == CurrencyKRW
}

// Money is an amount in a single currency.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// NewMoneyZero returns a zero amount in currency.
func NewMoneyZero(currency Currency) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Add returns m + other. Callers must only add amounts of the same currency.
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}
