package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/repo"
)

// ExportService assembles a flat export of a trip's expenses.
type ExportService struct {
	trips     repo.TripRepo
	schedules repo.ScheduleRepo
	expenses  repo.ExpenseRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, schedules repo.ScheduleRepo, expenses repo.ExpenseRepo) *ExportService {
	return &ExportService{trips: trips, schedules: schedules, expenses: expenses}
}

// Export returns one row per expense of trip tripID matching f, in the order
// given by order. It returns domain.ErrNotFound when the trip does not exist.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter, order domain.ExpenseSort) ([]domain.ExpenseExportRow, error) {
	if err := validateExpenseQuery(f, order); err != nil {
		return nil, err
	}
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	all, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	list := domain.FilterExpenses(all, f)
	domain.SortExpenses(list, order)

	var scheduleTitles map[uuid.UUID]string
	if linksSchedules(list) {
		if scheduleTitles, err = s.scheduleTitles(ctx, tripID); err != nil {
			return nil, err
		}
	}

	rows := make([]domain.ExpenseExportRow, 0, len(list))
	for _, e := range list {
		row := domain.ExpenseExportRow{
			TripID:    trip.ID,
			TripTitle: trip.Title,
			Date:      e.Date,
			Title:     e.Title,
			Category:  e.Category,
			City:      e.City,
			Amount:    e.Amount,
			Currency:  e.Currency,
		}
		if e.ScheduleID != nil {
			row.ScheduleTitle = scheduleTitles[*e.ScheduleID]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *ExportService) scheduleTitles(ctx context.Context, tripID uuid.UUID) (map[uuid.UUID]string, error) {
	list, err := s.schedules.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	titles := make(map[uuid.UUID]string, len(list))
	for _, sc := range list {
		titles[sc.ID] = sc.Title
	}
	return titles, nil
}

func linksSchedules(list []domain.Expense) bool {
	for _, e := range list {
		if e.ScheduleID != nil {
			return true
		}
	}
	return false
}
