package domain

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is one planned activity on a given day of a trip.
// StartTime and EndTime are "HH:MM" strings; empty means not set.
type Schedule struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Date      time.Time
	StartTime string
	EndTime   string
	Title     string
	Location  string
	Memo      string
	CreatedAt time.Time
}
