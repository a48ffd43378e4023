package domain

import "github.com/google/uuid"

// ChecklistItem is a single packing or preparation item for a trip.
type ChecklistItem struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Category  string
	Label     string
	IsChecked bool
}
