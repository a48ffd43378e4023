package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/repo"
	"github.com/familytrip/tripboard/testutil"
)

// seedTrip inserts a trip inside tx and returns it, so child repos on the
// same transaction have a parent row to reference.
func seedTrip(t *testing.T, tx pgx.Tx) domain.Trip {
	t.Helper()
	trip, err := repo.NewTripRepo(tx).Create(context.Background(), tripFixture())
	require.NoError(t, err, "seed trip")
	return trip
}

func day(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

func TestScheduleRepo_CreateAndList_Ordered(t *testing.T) {
	tx := testutil.NewTx(t)
	trip := seedTrip(t, tx)
	r := repo.NewScheduleRepo(tx)
	ctx := context.Background()

	for _, s := range []domain.Schedule{
		{TripID: trip.ID, Date: day(11), StartTime: "09:00", Title: "Zoo"},
		{TripID: trip.ID, Date: day(10), StartTime: "18:30", Title: "Dinner"},
		{TripID: trip.ID, Date: day(10), Title: "Check in"},
		{TripID: trip.ID, Date: day(10), StartTime: "10:00", EndTime: "12:00", Title: "Opera House"},
	} {
		_, err := r.Create(ctx, s)
		require.NoError(t, err)
	}

	got, err := r.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)

	var titles []string
	for _, s := range got {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Check in", "Opera House", "Dinner", "Zoo"}, titles)
	assert.Equal(t, "12:00", got[1].EndTime)
	assert.Empty(t, got[0].StartTime, "untimed schedule keeps empty start time")
}

func TestScheduleRepo_ScopedByTrip(t *testing.T) {
	tx := testutil.NewTx(t)
	trip := seedTrip(t, tx)
	r := repo.NewScheduleRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Schedule{TripID: trip.ID, Date: day(10), Title: "Beach"})
	require.NoError(t, err)

	_, err = r.GetByID(ctx, uuid.New(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "another trip must not see the schedule")

	err = r.Delete(ctx, uuid.New(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScheduleRepo_UpdateAndDelete(t *testing.T) {
	tx := testutil.NewTx(t)
	trip := seedTrip(t, tx)
	r := repo.NewScheduleRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Schedule{TripID: trip.ID, Date: day(10), Title: "Beach"})
	require.NoError(t, err)

	created.Title = "Bondi Beach"
	created.Location = "Bondi"
	created.StartTime = "08:00"
	updated, err := r.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Bondi Beach", updated.Title)
	assert.Equal(t, "Bondi", updated.Location)
	assert.Equal(t, "08:00", updated.StartTime)

	require.NoError(t, r.Delete(ctx, trip.ID, created.ID))
	_, err = r.GetByID(ctx, trip.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
