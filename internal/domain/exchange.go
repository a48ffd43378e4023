package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the price of one Base unit in Quote, as scraped from Source.
// Rate is always finite and positive.
type ExchangeRate struct {
	Rate      decimal.Decimal
	Base      Currency
	Quote     Currency
	FetchedAt time.Time
	Source    string
	Cached    bool
}

// Convert returns m expressed in the rate's quote currency.
// Amounts already in the quote currency are returned unchanged; amounts in
// the base currency are multiplied by Rate.
func (r ExchangeRate) Convert(m Money) Money {
	if m.Currency == r.Base {
		return Money{Amount: m.Amount.Mul(r.Rate), Currency: r.Quote}
	}
	return m
}
