package domain

import (
	"time"

	"github.com/google/uuid"
)

// Memo is a free-form note attached to a trip.
type Memo struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
