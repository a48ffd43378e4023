package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/repo"
)

// MemoService implements business logic for memos.
type MemoService struct {
	trips repo.TripRepo
	memos repo.MemoRepo
}

// NewMemoService constructs a MemoService backed by the provided repos.
func NewMemoService(trips repo.TripRepo, memos repo.MemoRepo) *MemoService {
	return &MemoService{trips: trips, memos: memos}
}

func (s *MemoService) Create(ctx context.Context, m domain.Memo) (domain.Memo, error) {
	if _, err := s.trips.GetByID(ctx, m.TripID); err != nil {
		return domain.Memo{}, fmt.Errorf("service.MemoService.Create: %w", err)
	}
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return domain.Memo{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	result, err := s.memos.Create(ctx, m)
	if err != nil {
		return domain.Memo{}, fmt.Errorf("service.MemoService.Create: %w", err)
	}
	return result, nil
}

func (s *MemoService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Memo, error) {
	out, err := s.memos.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.MemoService.ListByTripID: %w", err)
	}
	if out == nil {
		return []domain.Memo{}, nil
	}
	return out, nil
}

func (s *MemoService) Update(ctx context.Context, m domain.Memo) (domain.Memo, error) {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return domain.Memo{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	result, err := s.memos.Update(ctx, m)
	if err != nil {
		return domain.Memo{}, fmt.Errorf("service.MemoService.Update: %w", err)
	}
	return result, nil
}

func (s *MemoService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.memos.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.MemoService.Delete: %w", err)
	}
	return nil
}
