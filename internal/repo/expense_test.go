package repo_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/repo"
	"github.com/familytrip/tripboard/testutil"
)

func TestExpenseRepo_CreatePreservesDecimalAmount(t *testing.T) {
	tx := testutil.NewTx(t)
	trip := seedTrip(t, tx)
	r := repo.NewExpenseRepo(tx)

	got, err := r.Create(context.Background(), domain.Expense{
		TripID:   trip.ID,
		Date:     day(10),
		Amount:   decimal.RequireFromString("12.35"),
		Currency: domain.CurrencyAUD,
		Category: domain.ExpenseFood,
		Title:    "Flat white x3",
		City:     "Sydney",
	})

	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("12.35")), "got %s", got.Amount)
	assert.Nil(t, got.ScheduleID)
}

func TestExpenseRepo_ListNewestDateFirst(t *testing.T) {
	tx := testutil.NewTx(t)
	trip := seedTrip(t, tx)
	r := repo.NewExpenseRepo(tx)
	ctx := context.Background()

	for i, d := range []int{10, 12, 11} {
		_, err := r.Create(ctx, domain.Expense{
			TripID:   trip.ID,
			Date:     day(d),
			Amount:   decimal.NewFromInt(int64(i + 1)),
			Currency: domain.CurrencyKRW,
			Category: domain.ExpenseEtc,
			Title:    "item",
		})
		require.NoError(t, err)
	}

	got, err := r.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Date.Equal(day(12)))
	assert.True(t, got[2].Date.Equal(day(10)))
}

// Deleting a schedule must not delete the expenses that pointed at it.
func TestExpenseRepo_ScheduleReferenceIsWeak(t *testing.T) {
	tx := testutil.NewTx(t)
	trip := seedTrip(t, tx)
	schedules := repo.NewScheduleRepo(tx)
	r := repo.NewExpenseRepo(tx)
	ctx := context.Background()

	sched, err := schedules.Create(ctx, domain.Schedule{TripID: trip.ID, Date: day(10), Title: "Zoo"})
	require.NoError(t, err)

	created, err := r.Create(ctx, domain.Expense{
		TripID:     trip.ID,
		Date:       day(10),
		Amount:     decimal.NewFromInt(96),
		Currency:   domain.CurrencyAUD,
		Category:   domain.ExpenseActivity,
		Title:      "Zoo tickets",
		ScheduleID: &sched.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.ScheduleID)

	require.NoError(t, schedules.Delete(ctx, trip.ID, sched.ID))

	got, err := r.GetByID(ctx, trip.ID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ScheduleID)
}
