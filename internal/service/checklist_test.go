package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/service"
)

func TestChecklistService_Create(t *testing.T) {
	items := &mockChecklistRepo{
		create: func(_ context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
			item.ID = uuid.New()
			return item, nil
		},
	}
	svc := service.NewChecklistService(existingTrips(), items)

	got, err := svc.Create(context.Background(), domain.ChecklistItem{
		TripID: uuid.New(), Category: " Documents ", Label: " Passports ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Documents", got.Category)
	assert.Equal(t, "Passports", got.Label)
	assert.False(t, got.IsChecked)
}

func TestChecklistService_Create_Invalid(t *testing.T) {
	svc := service.NewChecklistService(existingTrips(), &mockChecklistRepo{})

	_, err := svc.Create(context.Background(), domain.ChecklistItem{TripID: uuid.New(), Category: "Documents"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), domain.ChecklistItem{TripID: uuid.New(), Label: "Passports"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestChecklistService_Create_TripNotFound(t *testing.T) {
	svc := service.NewChecklistService(missingTrips(), &mockChecklistRepo{})

	_, err := svc.Create(context.Background(), domain.ChecklistItem{TripID: uuid.New(), Category: "c", Label: "l"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChecklistService_Toggle(t *testing.T) {
	svc := service.NewChecklistService(existingTrips(), &mockChecklistRepo{
		toggle: func(_ context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error) {
			return domain.ChecklistItem{ID: id, TripID: tripID, IsChecked: true}, nil
		},
	})

	got, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.True(t, got.IsChecked)
}

func TestChecklistService_Toggle_NotFound(t *testing.T) {
	svc := service.NewChecklistService(existingTrips(), &mockChecklistRepo{
		toggle: func(_ context.Context, _, _ uuid.UUID) (domain.ChecklistItem, error) {
			return domain.ChecklistItem{}, domain.ErrNotFound
		},
	})

	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
