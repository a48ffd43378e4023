package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an expense.
type ExpenseCategory string

const (
	ExpenseFood      ExpenseCategory = "food"
	ExpenseTransport ExpenseCategory = "transport"
	ExpenseLodging   ExpenseCategory = "lodging"
	ExpenseActivity  ExpenseCategory = "activity"
	ExpenseShopping  ExpenseCategory = "shopping"
	ExpenseEtc       ExpenseCategory = "etc"
)

// ExpenseCategories lists every valid ExpenseCategory in display order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseFood, ExpenseTransport, ExpenseLodging, ExpenseActivity, ExpenseShopping, ExpenseEtc,
}

// Valid reports whether c is one of ExpenseCategories.
func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Expense is money spent during a trip.
// ScheduleID is a weak reference: the schedule may have been deleted since.
type Expense struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	Date       time.Time
	Amount     decimal.Decimal
	Currency   Currency
	Category   ExpenseCategory
	Title      string
	City       string
	ScheduleID *uuid.UUID
	CreatedAt  time.Time
}

// Expense amounts are stored as NUMERIC(14,2).
const (
	AmountScale     = 2
	AmountMaxDigits = 12
)

var amountLimit = decimal.New(1, AmountMaxDigits)

// AmountFits reports whether d can be stored without rounding: at most
// AmountScale decimal places and AmountMaxDigits integer digits.
func AmountFits(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale)) && d.Abs().LessThan(amountLimit)
}

// Money returns the expense amount tagged with its currency.
func (e Expense) Money() Money {
	return Money{Amount: e.Amount, Currency: e.Currency}
}

// ExpenseFilter narrows an expense list. Zero-valued fields match everything.
// From and To are inclusive calendar dates.
type ExpenseFilter struct {
	City     string
	Category ExpenseCategory
	Currency Currency
	From     *time.Time
	To       *time.Time
}

// Match reports whether e passes every set criterion of f.
// City comparison is case-insensitive.
func (f ExpenseFilter) Match(e Expense) bool {
	if f.City != "" && !strings.EqualFold(strings.TrimSpace(f.City), strings.TrimSpace(e.City)) {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Currency != "" && e.Currency != f.Currency {
		return false
	}
	if f.From != nil && civilDay(e.Date) < civilDay(*f.From) {
		return false
	}
	if f.To != nil && civilDay(e.Date) > civilDay(*f.To) {
		return false
	}
	return true
}

// ExpenseSortField names the key an expense list is ordered by.
type ExpenseSortField string

const (
	SortByDate   ExpenseSortField = "date"
	SortByAmount ExpenseSortField = "amount"
)

// ExpenseSort orders an expense list. The zero value sorts by date ascending.
type ExpenseSort struct {
	Field ExpenseSortField
	Desc  bool
}

// FilterExpenses returns the expenses matching f, preserving input order.
// The result is never nil.
func FilterExpenses(expenses []Expense, f ExpenseFilter) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// SortExpenses orders expenses in place. Ties keep their relative order.
// Amounts are compared numerically regardless of currency.
func SortExpenses(expenses []Expense, s ExpenseSort) {
	less := func(a, b Expense) bool {
		if s.Field == SortByAmount {
			return a.Amount.LessThan(b.Amount)
		}
		return a.Date.Before(b.Date)
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		if s.Desc {
			return less(expenses[j], expenses[i])
		}
		return less(expenses[i], expenses[j])
	})
}
