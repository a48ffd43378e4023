package handler

import (
	"net/http"

	"github.com/familytrip/tripboard/internal/api"
)

// GetExchangeRate handles GET /exchange-rate.
// 200 carries a finite positive rate. A page that cannot be reached maps to
// 502 rate_unavailable and a page without a usable number to 500
// rate_unparsable.
func (s *Server) GetExchangeRate(w http.ResponseWriter, r *http.Request) {
	rate, err := s.rates.Rate(r.Context())
	if err != nil {
		s.fail(w, r, err, "exchange rate")
		return
	}
	writeJSON(w, http.StatusOK, api.FromExchangeRate(rate))
}
