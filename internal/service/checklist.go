package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/repo"
)

// ChecklistService implements business logic for checklist items.
type ChecklistService struct {
	trips repo.TripRepo
	items repo.ChecklistRepo
}

// NewChecklistService constructs a ChecklistService backed by the provided repos.
func NewChecklistService(trips repo.TripRepo, items repo.ChecklistRepo) *ChecklistService {
	return &ChecklistService{trips: trips, items: items}
}

func (s *ChecklistService) Create(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	if _, err := s.trips.GetByID(ctx, item.TripID); err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("service.ChecklistService.Create: %w", err)
	}
	item = normalizeChecklistItem(item)
	if err := validateChecklistItem(item); err != nil {
		return domain.ChecklistItem{}, err
	}
	result, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("service.ChecklistService.Create: %w", err)
	}
	return result, nil
}

func (s *ChecklistService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ChecklistItem, error) {
	out, err := s.items.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ChecklistService.ListByTripID: %w", err)
	}
	if out == nil {
		return []domain.ChecklistItem{}, nil
	}
	return out, nil
}

func (s *ChecklistService) Update(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	item = normalizeChecklistItem(item)
	if err := validateChecklistItem(item); err != nil {
		return domain.ChecklistItem{}, err
	}
	result, err := s.items.Update(ctx, item)
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("service.ChecklistService.Update: %w", err)
	}
	return result, nil
}

func (s *ChecklistService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.items.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.ChecklistService.Delete: %w", err)
	}
	return nil
}

// Toggle flips the checked state of an item.
func (s *ChecklistService) Toggle(ctx context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error) {
	result, err := s.items.Toggle(ctx, tripID, id)
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("service.ChecklistService.Toggle: %w", err)
	}
	return result, nil
}

func normalizeChecklistItem(item domain.ChecklistItem) domain.ChecklistItem {
	item.Label = strings.TrimSpace(item.Label)
	item.Category = strings.TrimSpace(item.Category)
	return item
}

func validateChecklistItem(item domain.ChecklistItem) error {
	if item.Label == "" {
		return fmt.Errorf("%w: label is required", domain.ErrValidation)
	}
	if item.Category == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	return nil
}
