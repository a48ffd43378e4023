package api

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/familytrip/tripboard/internal/domain"
)

const dateLayout = "2006-01-02"

// ExpenseQueryValues encodes an expense filter and sort as URL query
// parameters: city, category, currency, from, to, sort and order.
func ExpenseQueryValues(f domain.ExpenseFilter, s domain.ExpenseSort) url.Values {
	q := url.Values{}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if f.Currency != "" {
		q.Set("currency", string(f.Currency))
	}
	if f.From != nil {
		q.Set("from", f.From.Format(dateLayout))
	}
	if f.To != nil {
		q.Set("to", f.To.Format(dateLayout))
	}
	if s.Field != "" {
		q.Set("sort", string(s.Field))
	}
	if s.Desc {
		q.Set("order", "desc")
	}
	return q
}

// ParseExpenseQuery is the inverse of ExpenseQueryValues. Malformed dates or
// an unknown order return an error wrapping domain.ErrValidation; value checks
// on category, currency and sort field are left to the service.
func ParseExpenseQuery(q url.Values) (domain.ExpenseFilter, domain.ExpenseSort, error) {
	f := domain.ExpenseFilter{
		City:     strings.TrimSpace(q.Get("city")),
		Category: domain.ExpenseCategory(q.Get("category")),
		Currency: domain.Currency(strings.ToUpper(q.Get("currency"))),
	}
	for name, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return domain.ExpenseFilter{}, domain.ExpenseSort{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrValidation, name)
		}
		*dst = &t
	}

	s := domain.ExpenseSort{Field: domain.ExpenseSortField(q.Get("sort"))}
	switch strings.ToLower(q.Get("order")) {
	case "", "asc":
	case "desc":
		s.Desc = true
	default:
		return domain.ExpenseFilter{}, domain.ExpenseSort{}, fmt.Errorf("%w: order must be asc or desc", domain.ErrValidation)
	}
	return f, s, nil
}
