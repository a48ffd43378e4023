package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/familytrip/tripboard/internal/domain"
)

func tripOn(start, end string) domain.Trip {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	return domain.Trip{Title: "Sydney", StartDate: s, EndDate: e}
}

func TestCountdownFor_Upcoming(t *testing.T) {
	trip := tripOn("2025-07-10", "2025-07-20")
	today := time.Date(2025, 7, 1, 23, 59, 0, 0, time.UTC)

	got := domain.CountdownFor(trip, today)

	assert.Equal(t, domain.PhaseUpcoming, got.Phase)
	assert.Equal(t, 9, got.DaysUntilStart)
	assert.Equal(t, 11, got.TotalDays)
	assert.Zero(t, got.DayNumber)
}

func TestCountdownFor_FirstAndLastDayAreOngoing(t *testing.T) {
	trip := tripOn("2025-07-10", "2025-07-20")

	first := domain.CountdownFor(trip, time.Date(2025, 7, 10, 8, 0, 0, 0, time.UTC))
	last := domain.CountdownFor(trip, time.Date(2025, 7, 20, 22, 0, 0, 0, time.UTC))

	assert.Equal(t, domain.PhaseOngoing, first.Phase)
	assert.Equal(t, 1, first.DayNumber)
	assert.Equal(t, domain.PhaseOngoing, last.Phase)
	assert.Equal(t, 11, last.DayNumber)
}

func TestCountdownFor_Finished(t *testing.T) {
	trip := tripOn("2025-07-10", "2025-07-20")

	got := domain.CountdownFor(trip, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, domain.PhaseFinished, got.Phase)
	assert.Equal(t, 12, got.DaysSinceEnd)
}

// A local evening must count as that local calendar day, not the UTC one.
func TestCountdownFor_UsesTodaysOwnLocation(t *testing.T) {
	trip := tripOn("2025-07-10", "2025-07-20")
	sydney := time.FixedZone("AEST", 10*60*60)

	got := domain.CountdownFor(trip, time.Date(2025, 7, 10, 7, 0, 0, 0, sydney)) // 2025-07-09 21:00 UTC

	assert.Equal(t, domain.PhaseOngoing, got.Phase)
	assert.Equal(t, 1, got.DayNumber)
}
