package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/repo"
)

// PlaceService implements business logic for bookmarked places.
type PlaceService struct {
	trips  repo.TripRepo
	places repo.PlaceRepo
}

// NewPlaceService constructs a PlaceService backed by the provided repos.
func NewPlaceService(trips repo.TripRepo, places repo.PlaceRepo) *PlaceService {
	return &PlaceService{trips: trips, places: places}
}

// Create validates the place, verifies the parent trip exists, then persists.
func (s *PlaceService) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	if _, err := s.trips.GetByID(ctx, p.TripID); err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", err)
	}
	p = normalizePlace(p)
	if err := validatePlace(p); err != nil {
		return domain.Place{}, err
	}
	result, err := s.places.Create(ctx, p)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", err)
	}
	return result, nil
}

// ListByTripID returns the trip's places narrowed by f.
// An unknown category in f is a validation error rather than an empty list.
func (s *PlaceService) ListByTripID(ctx context.Context, tripID uuid.UUID, f domain.PlaceFilter) ([]domain.Place, error) {
	if f.Category != "" && !f.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, f.Category)
	}
	f.City = strings.TrimSpace(f.City)
	out, err := s.places.ListByTripID(ctx, tripID, f)
	if err != nil {
		return nil, fmt.Errorf("service.PlaceService.ListByTripID: %w", err)
	}
	if out == nil {
		return []domain.Place{}, nil
	}
	return out, nil
}

// Update validates and persists changes to an existing place.
func (s *PlaceService) Update(ctx context.Context, p domain.Place) (domain.Place, error) {
	p = normalizePlace(p)
	if err := validatePlace(p); err != nil {
		return domain.Place{}, err
	}
	result, err := s.places.Update(ctx, p)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a place.
func (s *PlaceService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.places.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.PlaceService.Delete: %w", err)
	}
	return nil
}

// RecordVisit adds one to the place's visit counter.
func (s *PlaceService) RecordVisit(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error) {
	result, err := s.places.IncrementVisits(ctx, tripID, id)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.RecordVisit: %w", err)
	}
	return result, nil
}

func normalizePlace(p domain.Place) domain.Place {
	p.Name = strings.TrimSpace(p.Name)
	p.City = strings.TrimSpace(p.City)
	p.WebsiteURL = strings.TrimSpace(p.WebsiteURL)
	p.GoogleMapURL = strings.TrimSpace(p.GoogleMapURL)
	return p
}

func validatePlace(p domain.Place) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, p.Category)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrValidation)
	}
	for field, raw := range map[string]string{"website_url": p.WebsiteURL, "google_map_url": p.GoogleMapURL} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL", domain.ErrValidation, field)
		}
	}
	if p.Lat != nil && (*p.Lat < -90 || *p.Lat > 90) {
		return fmt.Errorf("%w: lat out of range", domain.ErrValidation)
	}
	if p.Lng != nil && (*p.Lng < -180 || *p.Lng > 180) {
		return fmt.Errorf("%w: lng out of range", domain.ErrValidation)
	}
	return nil
}
