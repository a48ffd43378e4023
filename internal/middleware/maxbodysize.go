package middleware

import (
	"fmt"
	"net/http"

	"github.com/familytrip/tripboard/internal/api"
)

// NewMaxBodySizeHandler returns a middleware that limits incoming request body
// sizes to limit bytes. A request whose Content-Length already exceeds the
// limit is rejected with 413 before the next handler runs; otherwise the body
// is wrapped with http.MaxBytesReader so reads past the limit fail and the
// handler can answer 413 itself.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, http.StatusRequestEntityTooLarge, api.CodeBodyTooLarge,
					fmt.Sprintf("request body must not exceed %d bytes", limit))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
