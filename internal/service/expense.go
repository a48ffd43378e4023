package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/repo"
)

// RateSource supplies the current exchange rate for expense summaries.
type RateSource interface {
	Rate(ctx context.Context) (domain.ExchangeRate, error)
}

// ExpenseService implements business logic for expenses.
type ExpenseService struct {
	trips     repo.TripRepo
	schedules repo.ScheduleRepo
	expenses  repo.ExpenseRepo
	rates     RateSource
	log       *slog.Logger
}

// NewExpenseService constructs an ExpenseService. rates may be nil, in which
// case summaries carry no converted total.
func NewExpenseService(trips repo.TripRepo, schedules repo.ScheduleRepo, expenses repo.ExpenseRepo, rates RateSource) *ExpenseService {
	return &ExpenseService{
		trips:     trips,
		schedules: schedules,
		expenses:  expenses,
		rates:     rates,
		log:       slog.Default(),
	}
}

// Create validates the expense, verifies the parent trip and any linked
// schedule exist, then persists.
func (s *ExpenseService) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	if _, err := s.trips.GetByID(ctx, e.TripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	e = normalizeExpense(e)
	if err := validateExpense(e); err != nil {
		return domain.Expense{}, err
	}
	if err := s.checkSchedule(ctx, e); err != nil {
		return domain.Expense{}, err
	}
	result, err := s.expenses.Create(ctx, e)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return result, nil
}

// List returns the trip's expenses narrowed by f and ordered by order.
func (s *ExpenseService) List(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter, order domain.ExpenseSort) ([]domain.Expense, error) {
	if err := validateExpenseQuery(f, order); err != nil {
		return nil, err
	}
	all, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.List: %w", err)
	}
	out := domain.FilterExpenses(all, f)
	domain.SortExpenses(out, order)
	return out, nil
}

// Summary totals the trip's expenses matching f. A rate that cannot be
// fetched is logged and the summary is returned without a converted total.
func (s *ExpenseService) Summary(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter) (domain.ExpenseSummary, error) {
	list, err := s.List(ctx, tripID, f, domain.ExpenseSort{})
	if err != nil {
		return domain.ExpenseSummary{}, fmt.Errorf("service.ExpenseService.Summary: %w", err)
	}
	var rate *domain.ExchangeRate
	if s.rates != nil {
		r, err := s.rates.Rate(ctx)
		if err != nil {
			s.log.WarnContext(ctx, "exchange rate unavailable for summary", "trip_id", tripID, "error", err)
		} else {
			rate = &r
		}
	}
	return domain.Summarize(list, rate), nil
}

func (s *ExpenseService) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	e = normalizeExpense(e)
	if err := validateExpense(e); err != nil {
		return domain.Expense{}, err
	}
	if err := s.checkSchedule(ctx, e); err != nil {
		return domain.Expense{}, err
	}
	result, err := s.expenses.Update(ctx, e)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return result, nil
}

func (s *ExpenseService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.expenses.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// checkSchedule rejects a schedule link that points outside the trip.
func (s *ExpenseService) checkSchedule(ctx context.Context, e domain.Expense) error {
	if e.ScheduleID == nil {
		return nil
	}
	_, err := s.schedules.GetByID(ctx, e.TripID, *e.ScheduleID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: schedule_id does not belong to this trip", domain.ErrValidation)
	}
	if err != nil {
		return fmt.Errorf("service.ExpenseService.checkSchedule: %w", err)
	}
	return nil
}

func normalizeExpense(e domain.Expense) domain.Expense {
	e.Title = strings.TrimSpace(e.Title)
	e.City = strings.TrimSpace(e.City)
	e.Currency = domain.Currency(strings.ToUpper(strings.TrimSpace(string(e.Currency))))
	return e
}

// validateExpense enforces:
//   - Title and Date are required.
//   - Amount is strictly positive and fits the stored precision.
//   - Currency and Category are known values.
func validateExpense(e domain.Expense) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrValidation)
	}
	if !domain.AmountFits(e.Amount) {
		return fmt.Errorf("%w: amount must have at most %d decimal places and %d integer digits",
			domain.ErrValidation, domain.AmountScale, domain.AmountMaxDigits)
	}
	if !e.Currency.Valid() {
		return fmt.Errorf("%w: unknown currency %q", domain.ErrValidation, e.Currency)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, e.Category)
	}
	return nil
}

func validateExpenseQuery(f domain.ExpenseFilter, order domain.ExpenseSort) error {
	if f.Category != "" && !f.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, f.Category)
	}
	if f.Currency != "" && !f.Currency.Valid() {
		return fmt.Errorf("%w: unknown currency %q", domain.ErrValidation, f.Currency)
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return fmt.Errorf("%w: to must not be before from", domain.ErrValidation)
	}
	switch order.Field {
	case "", domain.SortByDate, domain.SortByAmount:
	default:
		return fmt.Errorf("%w: unknown sort field %q", domain.ErrValidation, order.Field)
	}
	return nil
}
