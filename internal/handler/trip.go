package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/api"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req api.TripRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.trips.Create(r.Context(), req.ToDomain(uuid.Nil))
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, api.FromTrip(created))
}

// ListTrips handles GET /trips. The whole directory is returned, newest first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	data := make([]api.Trip, len(trips))
	for i, t := range trips {
		data[i] = api.FromTrip(t)
	}
	writeJSON(w, http.StatusOK, api.List[api.Trip]{Data: data})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, api.FromTrip(trip))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req api.TripRequest
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.trips.Update(r.Context(), req.ToDomain(id))
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, api.FromTrip(updated))
}

// DeleteTrip handles DELETE /trips/{tripID}. Everything scoped to the trip
// goes with it.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCountdown handles GET /trips/{tripID}/countdown.
func (s *Server) GetCountdown(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	c, err := s.trips.Countdown(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, api.FromCountdown(c))
}
