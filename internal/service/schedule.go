package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/repo"
)

// ScheduleService implements business logic for Schedule operations.
// It holds the trips repo because creating a schedule requires the parent trip.
type ScheduleService struct {
	trips     repo.TripRepo
	schedules repo.ScheduleRepo
}

// NewScheduleService constructs a ScheduleService backed by the provided repos.
func NewScheduleService(trips repo.TripRepo, schedules repo.ScheduleRepo) *ScheduleService {
	return &ScheduleService{trips: trips, schedules: schedules}
}

// Create validates the schedule, verifies the parent trip exists, then persists.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *ScheduleService) Create(ctx context.Context, sc domain.Schedule) (domain.Schedule, error) {
	if _, err := s.trips.GetByID(ctx, sc.TripID); err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Create: %w", err)
	}
	sc = normalizeSchedule(sc)
	if err := validateSchedule(sc); err != nil {
		return domain.Schedule{}, err
	}
	result, err := s.schedules.Create(ctx, sc)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Create: %w", err)
	}
	return result, nil
}

// ListByTripID returns the trip's schedules in itinerary order.
// Always returns a non-nil slice.
func (s *ScheduleService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Schedule, error) {
	out, err := s.schedules.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.ListByTripID: %w", err)
	}
	if out == nil {
		return []domain.Schedule{}, nil
	}
	return out, nil
}

// Update validates and persists changes to an existing schedule.
func (s *ScheduleService) Update(ctx context.Context, sc domain.Schedule) (domain.Schedule, error) {
	sc = normalizeSchedule(sc)
	if err := validateSchedule(sc); err != nil {
		return domain.Schedule{}, err
	}
	result, err := s.schedules.Update(ctx, sc)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a schedule. Expenses that referenced it keep existing.
func (s *ScheduleService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.schedules.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.ScheduleService.Delete: %w", err)
	}
	return nil
}

func normalizeSchedule(sc domain.Schedule) domain.Schedule {
	sc.Title = strings.TrimSpace(sc.Title)
	sc.StartTime = strings.TrimSpace(sc.StartTime)
	sc.EndTime = strings.TrimSpace(sc.EndTime)
	sc.Location = strings.TrimSpace(sc.Location)
	return sc
}

// validateSchedule enforces:
//   - Title and Date are required.
//   - StartTime and EndTime, when set, are 24-hour "HH:MM".
//   - EndTime is not before StartTime when both are set.
func validateSchedule(sc domain.Schedule) error {
	if sc.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if sc.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	start, err := parseClock("start_time", sc.StartTime)
	if err != nil {
		return err
	}
	end, err := parseClock("end_time", sc.EndTime)
	if err != nil {
		return err
	}
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: end_time must not be before start_time", domain.ErrValidation)
	}
	return nil
}

// parseClock parses an optional "HH:MM" value; empty yields nil.
func parseClock(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be HH:MM", domain.ErrValidation, field)
	}
	return &t, nil
}
