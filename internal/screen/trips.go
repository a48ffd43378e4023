package screen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/tripctx"
)

// TripBackend is the trip API used by Trips.
type TripBackend interface {
	CreateTrip(ctx context.Context, t domain.Trip) (domain.Trip, error)
	UpdateTrip(ctx context.Context, t domain.Trip) (domain.Trip, error)
	DeleteTrip(ctx context.Context, id uuid.UUID) error
}

// Trips is the trip list. It reads the directory held by the shared context
// and refreshes it after every write.
type Trips struct {
	tc  *tripctx.Context
	b   TripBackend
	now func() time.Time
}

// NewTrips returns the trip list over the shared context tc.
func NewTrips(tc *tripctx.Context, b TripBackend) *Trips {
	return &Trips{tc: tc, b: b, now: time.Now}
}

// List returns the directory, refreshing it first.
func (v *Trips) List(ctx context.Context) ([]domain.Trip, error) {
	if err := v.tc.Refresh(ctx); err != nil {
		return nil, err
	}
	return v.tc.Trips(), nil
}

// Selected returns the selected trip and its day counter. ok is false when
// no trip is selected.
func (v *Trips) Selected() (trip domain.Trip, c domain.Countdown, ok bool) {
	t := v.tc.SelectedTrip()
	if t == nil {
		return domain.Trip{}, domain.Countdown{}, false
	}
	return *t, domain.CountdownFor(*t, v.now()), true
}

// Create adds a trip and makes it the selection.
func (v *Trips) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	created, err := v.b.CreateTrip(ctx, t)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("screen.Trips.Create: %w", err)
	}
	if err := v.tc.Refresh(ctx); err != nil {
		return created, fmt.Errorf("screen.Trips.Create: %w", err)
	}
	if err := v.tc.Select(ctx, created.ID); err != nil {
		return created, fmt.Errorf("screen.Trips.Create: %w", err)
	}
	return created, nil
}

// Update replaces trip t.ID and refreshes the directory.
func (v *Trips) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	updated, err := v.b.UpdateTrip(ctx, t)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("screen.Trips.Update: %w", err)
	}
	if err := v.tc.Refresh(ctx); err != nil {
		return updated, fmt.Errorf("screen.Trips.Update: %w", err)
	}
	return updated, nil
}

// Delete removes trip id. Deleting the selected trip clears the selection;
// the refreshed directory then picks the newest remaining trip.
func (v *Trips) Delete(ctx context.Context, id uuid.UUID) error {
	if err := v.b.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("screen.Trips.Delete: %w", err)
	}
	if v.tc.SelectedID() == id {
		if err := v.tc.Select(ctx, uuid.Nil); err != nil {
			return fmt.Errorf("screen.Trips.Delete: %w", err)
		}
	}
	if err := v.tc.Refresh(ctx); err != nil {
		return fmt.Errorf("screen.Trips.Delete: %w", err)
	}
	return nil
}
