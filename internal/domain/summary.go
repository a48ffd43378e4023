package domain

import "github.com/shopspring/decimal"

// CategoryTotal is the amount spent in one category and currency.
type CategoryTotal struct {
	Category ExpenseCategory
	Money    Money
}

// ExpenseSummary aggregates a list of expenses.
// Totals and ByCategory follow Currencies and ExpenseCategories order and
// omit zero entries. ConvertedTotal is set only when a rate was supplied.
type ExpenseSummary struct {
	Count          int
	Totals         []Money
	ByCategory     []CategoryTotal
	ConvertedTotal *Money
	Rate           *ExchangeRate
}

// Summarize totals expenses per currency and per category. When rate is
// non-nil every amount is also converted into the rate's quote currency and
// the grand total is rounded to two decimals.
func Summarize(expenses []Expense, rate *ExchangeRate) ExpenseSummary {
	totals := make(map[Currency]decimal.Decimal)
	byCat := make(map[ExpenseCategory]map[Currency]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Currency] = totals[e.Currency].Add(e.Amount)
		if byCat[e.Category] == nil {
			byCat[e.Category] = make(map[Currency]decimal.Decimal)
		}
		byCat[e.Category][e.Currency] = byCat[e.Category][e.Currency].Add(e.Amount)
	}

	sum := ExpenseSummary{
		Count:      len(expenses),
		Totals:     []Money{},
		ByCategory: []CategoryTotal{},
	}
	for _, c := range Currencies {
		if amt, ok := totals[c]; ok && !amt.IsZero() {
			sum.Totals = append(sum.Totals, Money{Amount: amt, Currency: c})
		}
	}
	for _, cat := range ExpenseCategories {
		for _, c := range Currencies {
			if amt, ok := byCat[cat][c]; ok && !amt.IsZero() {
				sum.ByCategory = append(sum.ByCategory, CategoryTotal{Category: cat, Money: Money{Amount: amt, Currency: c}})
			}
		}
	}

	if rate != nil {
		grand := NewMoneyZero(rate.Quote)
		for _, m := range sum.Totals {
			grand = grand.Add(rate.Convert(m))
		}
		grand.Amount = grand.Amount.Round(2)
		r := *rate
		sum.ConvertedTotal = &grand
		sum.Rate = &r
	}
	return sum
}
