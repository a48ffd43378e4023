// Package handler: export.go implements GET /trips/{tripID}/expenses/export.
// Returns the trip's expenses as a flat table, JSON by default or CSV with
// ?format=csv. The expense filter and sort parameters apply.
package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
)

// ExportExpenses handles GET /trips/{tripID}/expenses/export.
func (s *Server) ExportExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != api.ExportFormatCSV {
		s.fail(w, r, fmt.Errorf("%w: format must be json or csv", domain.ErrValidation), "trip")
		return
	}
	f, order, err := api.ParseExpenseQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	list, err := s.exports.Export(r.Context(), tripID, f, order)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}

	rows := make([]api.ExpenseExportRow, len(list))
	for i, row := range list {
		rows[i] = api.FromExpenseExportRow(row)
	}
	if format != api.ExportFormatCSV {
		writeJSON(w, http.StatusOK, api.List[api.ExpenseExportRow]{Data: rows})
		return
	}

	// Buffer so an encoding failure can still become a 500.
	var buf bytes.Buffer
	if err := api.WriteExpenseCSV(&buf, rows); err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="expenses-%s.csv"`, tripID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
