package domain

import "github.com/google/uuid"

// PlaceCategory classifies a bookmarked place.
type PlaceCategory string

const (
	PlaceTour    PlaceCategory = "tour"
	PlaceFood    PlaceCategory = "food"
	PlaceShop    PlaceCategory = "shop"
	PlacePlay    PlaceCategory = "play"
	PlaceMuseum  PlaceCategory = "museum"
	PlaceMedical PlaceCategory = "medical"
	PlaceMarket  PlaceCategory = "market"
)

// PlaceCategories lists every valid PlaceCategory in display order.
var PlaceCategories = []PlaceCategory{
	PlaceTour, PlaceFood, PlaceShop, PlacePlay, PlaceMuseum, PlaceMedical, PlaceMarket,
}

// Valid reports whether c is one of PlaceCategories.
func (c PlaceCategory) Valid() bool {
	for _, v := range PlaceCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Place is a bookmarked location for a trip.
// Optional contact and location fields are empty strings or nil when unknown.
type Place struct {
	ID             uuid.UUID
	TripID         uuid.UUID
	Name           string
	City           string
	Category       PlaceCategory
	Rating         int // 0..5
	IsKidFriendly  bool
	Notes          string
	Address        string
	OperatingHours string
	ContactPhone   string
	WebsiteURL     string
	GoogleMapURL   string
	Lat            *float64
	Lng            *float64
	VisitCount     int
}

// PlaceFilter narrows a place listing. Zero values match everything.
type PlaceFilter struct {
	City     string
	Category PlaceCategory
}
