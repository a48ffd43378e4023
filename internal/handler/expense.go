package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/api"
)

// ListExpenses handles GET /trips/{tripID}/expenses with optional
// city, category, currency, from, to, sort and order query parameters.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	f, order, err := api.ParseExpenseQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	list, err := s.expenses.List(r.Context(), tripID, f, order)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	data := make([]api.Expense, len(list))
	for i, e := range list {
		data[i] = api.FromExpense(e)
	}
	writeJSON(w, http.StatusOK, api.List[api.Expense]{Data: data})
}

// GetExpenseSummary handles GET /trips/{tripID}/expenses/summary. The same
// filter parameters as ListExpenses apply; sort parameters are ignored.
func (s *Server) GetExpenseSummary(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	f, _, err := api.ParseExpenseQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	sum, err := s.expenses.Summary(r.Context(), tripID, f)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, api.FromExpenseSummary(sum))
}

// CreateExpense handles POST /trips/{tripID}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req api.ExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.expenses.Create(r.Context(), req.ToDomain(tripID, uuid.Nil))
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, api.FromExpense(created))
}

// UpdateExpense handles PUT /trips/{tripID}/expenses/{id}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	var req api.ExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.expenses.Update(r.Context(), req.ToDomain(tripID, id))
	if err != nil {
		s.fail(w, r, err, "expense")
		return
	}
	writeJSON(w, http.StatusOK, api.FromExpense(updated))
}

// DeleteExpense handles DELETE /trips/{tripID}/expenses/{id}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	tripID, id, ok := pathIDs(w, r)
	if !ok {
		return
	}
	if err := s.expenses.Delete(r.Context(), tripID, id); err != nil {
		s.fail(w, r, err, "expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
