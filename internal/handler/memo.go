package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/api"
)

// ListMemos handles GET /trips/{tripID}/memos.
func (s *Server) ListMemos(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	list, err := s.memos.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	data := make([]api.Memo, len(list))
	for i, m := range list {
		data[i] = api.FromMemo(m)
	}
	writeJSON(w, http.StatusOK, api.List[api.Memo]{Data: data})
}

// CreateMemo handles POST /trips/{tripID}/memos.
func (s *Server) CreateMemo(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req api.MemoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.memos.Create(r.Context(), req.ToDomain(tripID, uuid.Nil))
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, api.FromMemo(created))
}

// UpdateMemo handles PUT /trips/{tripID}/memos/{id}.
func (s *Server) UpdateMemo(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	var req api.MemoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.memos.Update(r.Context(), req.ToDomain(tripID, id))
	if err != nil {
		s.fail(w, r, err, "memo")
		return
	}
	writeJSON(w, http.StatusOK, api.FromMemo(updated))
}

// DeleteMemo handles DELETE /trips/{tripID}/memos/{id}.
func (s *Server) DeleteMemo(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	if err := s.memos.Delete(r.Context(), tripID, id); err != nil {
		s.fail(w, r, err, "memo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
