package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/familytrip/tripboard/internal/api"
)

// writeError writes the API's standard error body. Middleware rejects requests
// before a handler runs, so it cannot reuse the handler package's helpers.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: api.ErrorDetail{Code: code, Message: message}})
}
