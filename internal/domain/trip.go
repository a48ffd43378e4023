// Package domain contains the core data types for the tripboard application.
// It is imported by every other internal package (repo, service, handler,
// client, tripctx) and holds no I/O.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents one family trip. It is the top-level aggregate; schedules,
// places, checklist items, expenses and memos all belong to a trip.
type Trip struct {
	ID          uuid.UUID
	Title       string
	StartDate   time.Time
	EndDate     time.Time
	FamilyCount *int     // nil when not recorded
	Cities      []string // stored comma-separated
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Phase describes where today falls relative to a trip's dates.
type Phase string

const (
	PhaseUpcoming Phase = "upcoming"
	PhaseOngoing  Phase = "ongoing"
	PhaseFinished Phase = "finished"
)

// Countdown is the day counter shown on the dashboard.
// Only the fields relevant to Phase are non-zero, except TotalDays which is
// always set.
type Countdown struct {
	Phase          Phase
	DaysUntilStart int
	DayNumber      int // 1-based day of the trip while ongoing
	TotalDays      int
	DaysSinceEnd   int
}

// CountdownFor computes the day counter for trip as seen on the calendar day
// of today. Time of day is ignored; today's date is taken in its own location
// and trip dates are treated as calendar dates.
func CountdownFor(trip Trip, today time.Time) Countdown {
	start := civilDay(trip.StartDate)
	end := civilDay(trip.EndDate)
	now := civilDay(today)

	c := Countdown{TotalDays: end - start + 1}
	switch {
	case now < start:
		c.Phase = PhaseUpcoming
		c.DaysUntilStart = start - now
	case now > end:
		c.Phase = PhaseFinished
		c.DaysSinceEnd = now - end
	default:
		c.Phase = PhaseOngoing
		c.DayNumber = now - start + 1
	}
	return c
}

// civilDay returns the number of days since the Unix epoch for t's calendar date.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
