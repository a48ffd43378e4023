package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
)

// ListPlaces handles GET /trips/{tripID}/places?city=&category=.
func (s *Server) ListPlaces(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	q := r.URL.Query()
	f := domain.PlaceFilter{City: q.Get("city"), Category: domain.PlaceCategory(q.Get("category"))}
	list, err := s.places.ListByTripID(r.Context(), tripID, f)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	data := make([]api.Place, len(list))
	for i, p := range list {
		data[i] = api.FromPlace(p)
	}
	writeJSON(w, http.StatusOK, api.List[api.Place]{Data: data})
}

// CreatePlace handles POST /trips/{tripID}/places.
func (s *Server) CreatePlace(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req api.PlaceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.places.Create(r.Context(), req.ToDomain(tripID, uuid.Nil))
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, api.FromPlace(created))
}

// UpdatePlace handles PUT /trips/{tripID}/places/{id}. The visit counter is
// not writable here; use RecordPlaceVisit.
func (s *Server) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	var req api.PlaceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.places.Update(r.Context(), req.ToDomain(tripID, id))
	if err != nil {
		s.fail(w, r, err, "place")
		return
	}
	writeJSON(w, http.StatusOK, api.FromPlace(updated))
}

// DeletePlace handles DELETE /trips/{tripID}/places/{id}.
func (s *Server) DeletePlace(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	if err := s.places.Delete(r.Context(), tripID, id); err != nil {
		s.fail(w, r, err, "place")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordPlaceVisit handles POST /trips/{tripID}/places/{id}/visits.
func (s *Server) RecordPlaceVisit(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	p, err := s.places.RecordVisit(r.Context(), tripID, id)
	if err != nil {
		s.fail(w, r, err, "place")
		return
	}
	writeJSON(w, http.StatusOK, api.FromPlace(p))
}
