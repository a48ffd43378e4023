package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/api"
)

// ListSchedules handles GET /trips/{tripID}/schedules.
func (s *Server) ListSchedules(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	list, err := s.schedules.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	data := make([]api.Schedule, len(list))
	for i, sc := range list {
		data[i] = api.FromSchedule(sc)
	}
	writeJSON(w, http.StatusOK, api.List[api.Schedule]{Data: data})
}

// CreateSchedule handles POST /trips/{tripID}/schedules.
func (s *Server) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req api.ScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.schedules.Create(r.Context(), req.ToDomain(tripID, uuid.Nil))
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, api.FromSchedule(created))
}

// UpdateSchedule handles PUT /trips/{tripID}/schedules/{id}.
func (s *Server) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	var req api.ScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.schedules.Update(r.Context(), req.ToDomain(tripID, id))
	if err != nil {
		s.fail(w, r, err, "schedule")
		return
	}
	writeJSON(w, http.StatusOK, api.FromSchedule(updated))
}

// DeleteSchedule handles DELETE /trips/{tripID}/schedules/{id}.
func (s *Server) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	if err := s.schedules.Delete(r.Context(), tripID, id); err != nil {
		s.fail(w, r, err, "schedule")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
