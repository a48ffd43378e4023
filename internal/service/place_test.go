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

func validPlace(tripID uuid.UUID) domain.Place {
	lat, lng := -33.8568, 151.2153
	return domain.Place{
		TripID:        tripID,
		Name:          "Sydney Opera House",
		City:          "Sydney",
		Category:      domain.PlaceTour,
		Rating:        5,
		IsKidFriendly: true,
		WebsiteURL:    "https://www.sydneyoperahouse.com",
		Lat:           &lat,
		Lng:           &lng,
	}
}

func echoPlaces() *mockPlaceRepo {
	return &mockPlaceRepo{
		create: func(_ context.Context, p domain.Place) (domain.Place, error) { return p, nil },
		update: func(_ context.Context, p domain.Place) (domain.Place, error) { return p, nil },
	}
}

func TestPlaceService_Create_OK(t *testing.T) {
	svc := service.NewPlaceService(existingTrips(), echoPlaces())

	got, err := svc.Create(context.Background(), validPlace(uuid.New()))

	require.NoError(t, err)
	assert.Equal(t, "Sydney Opera House", got.Name)
}

func TestPlaceService_Create_TripNotFound(t *testing.T) {
	svc := service.NewPlaceService(missingTrips(), echoPlaces())

	_, err := svc.Create(context.Background(), validPlace(uuid.New()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlaceService_Create_Invalid(t *testing.T) {
	badLat := 91.0
	cases := map[string]func(*domain.Place){
		"blank name":       func(p *domain.Place) { p.Name = "" },
		"unknown category": func(p *domain.Place) { p.Category = "casino" },
		"rating too high":  func(p *domain.Place) { p.Rating = 6 },
		"negative rating":  func(p *domain.Place) { p.Rating = -1 },
		"relative url":     func(p *domain.Place) { p.WebsiteURL = "opera-house" },
		"lat out of range": func(p *domain.Place) { p.Lat = &badLat },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc := service.NewPlaceService(existingTrips(), echoPlaces())
			p := validPlace(uuid.New())
			mutate(&p)

			_, err := svc.Create(context.Background(), p)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestPlaceService_ListByTripID_PassesFilter(t *testing.T) {
	var seen domain.PlaceFilter
	svc := service.NewPlaceService(existingTrips(), &mockPlaceRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID, f domain.PlaceFilter) ([]domain.Place, error) {
			seen = f
			return nil, nil
		},
	})

	got, err := svc.ListByTripID(context.Background(), uuid.New(),
		domain.PlaceFilter{City: " Sydney ", Category: domain.PlaceFood})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "Sydney", seen.City)
	assert.Equal(t, domain.PlaceFood, seen.Category)
}

func TestPlaceService_ListByTripID_UnknownCategory(t *testing.T) {
	svc := service.NewPlaceService(existingTrips(), &mockPlaceRepo{})

	_, err := svc.ListByTripID(context.Background(), uuid.New(), domain.PlaceFilter{Category: "casino"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlaceService_RecordVisit(t *testing.T) {
	tripID, id := uuid.New(), uuid.New()
	svc := service.NewPlaceService(existingTrips(), &mockPlaceRepo{
		incrementVisits: func(_ context.Context, gotTrip, gotID uuid.UUID) (domain.Place, error) {
			assert.Equal(t, tripID, gotTrip)
			assert.Equal(t, id, gotID)
			return domain.Place{ID: id, TripID: tripID, VisitCount: 2}, nil
		},
	})

	got, err := svc.RecordVisit(context.Background(), tripID, id)

	require.NoError(t, err)
	assert.Equal(t, 2, got.VisitCount)
}
