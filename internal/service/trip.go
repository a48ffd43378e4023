// Package service contains the business logic for the tripboard API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
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

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
	now  func() time.Time
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r, now: time.Now}
}

// WithClock replaces the time source used by Countdown and returns s.
func (s *TripService) WithClock(now func() time.Time) *TripService {
	s.now = now
	return s
}

// Create validates and persists a new trip.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the whole trip directory, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and updates an existing trip.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip and everything scoped to it.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Countdown returns the day counter for a trip as of today.
func (s *TripService) Countdown(ctx context.Context, id uuid.UUID) (domain.Countdown, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Countdown{}, fmt.Errorf("service.TripService.Countdown: %w", err)
	}
	return domain.CountdownFor(trip, s.now()), nil
}

// normalizeTrip trims the title and drops blank city names.
func normalizeTrip(t domain.Trip) domain.Trip {
	t.Title = strings.TrimSpace(t.Title)
	var cities []string
	for _, c := range t.Cities {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	t.Cities = cities
	return t
}

// validateTrip enforces business rules common to both Create and Update.
//   - Title must be non-empty.
//   - Both dates are required and EndDate must not be before StartDate.
//   - FamilyCount, when set, must be at least 1.
func validateTrip(t domain.Trip) error {
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if t.FamilyCount != nil && *t.FamilyCount < 1 {
		return fmt.Errorf("%w: family_count must be at least 1", domain.ErrValidation)
	}
	return nil
}
