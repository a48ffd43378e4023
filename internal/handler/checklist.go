package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/api"
)

// ListChecklist handles GET /trips/{tripID}/checklists.
func (s *Server) ListChecklist(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	list, err := s.checklists.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	data := make([]api.ChecklistItem, len(list))
	for i, c := range list {
		data[i] = api.FromChecklistItem(c)
	}
	writeJSON(w, http.StatusOK, api.List[api.ChecklistItem]{Data: data})
}

// CreateChecklistItem handles POST /trips/{tripID}/checklists.
func (s *Server) CreateChecklistItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req api.ChecklistItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.checklists.Create(r.Context(), req.ToDomain(tripID, uuid.Nil))
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, api.FromChecklistItem(created))
}

// UpdateChecklistItem handles PUT /trips/{tripID}/checklists/{id}.
func (s *Server) UpdateChecklistItem(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	var req api.ChecklistItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.checklists.Update(r.Context(), req.ToDomain(tripID, id))
	if err != nil {
		s.fail(w, r, err, "checklist item")
		return
	}
	writeJSON(w, http.StatusOK, api.FromChecklistItem(updated))
}

// DeleteChecklistItem handles DELETE /trips/{tripID}/checklists/{id}.
func (s *Server) DeleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	if err := s.checklists.Delete(r.Context(), tripID, id); err != nil {
		s.fail(w, r, err, "checklist item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleChecklistItem handles POST /trips/{tripID}/checklists/{id}/toggle.
func (s *Server) ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	item, err := s.checklists.Toggle(r.Context(), tripID, id)
	if err != nil {
		s.fail(w, r, err, "checklist item")
		return
	}
	writeJSON(w, http.StatusOK, api.FromChecklistItem(item))
}
