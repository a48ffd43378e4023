package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, api.ErrorResponse{Error: api.ErrorDetail{Code: code, Message: message}})
}

// fail maps err onto a status code and error body. what names the resource
// for not-found messages, e.g. "trip".
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, api.CodeNotFound, what+" not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, api.CodeValidation, unwrapMessage(err))
	case errors.Is(err, domain.ErrRateUnparsable):
		s.log.ErrorContext(r.Context(), "exchange rate unparsable", "error", err)
		writeError(w, http.StatusInternalServerError, api.CodeRateUnparsable, "exchange rate page did not contain a usable rate")
	case errors.Is(err, domain.ErrRateUnavailable):
		s.log.WarnContext(r.Context(), "exchange rate unavailable", "error", err)
		writeError(w, http.StatusBadGateway, api.CodeRateUnavailable, "exchange rate source is unavailable")
	default:
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
	}
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "service.TripService.Create: validation error: title is required" → "title is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

// decodeBody decodes a JSON request body into dst and validates it. It writes
// the error response itself and reports whether the caller may continue.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, api.CodeBodyTooLarge,
				fmt.Sprintf("request body must not exceed %d bytes", maxErr.Limit))
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, api.CodeBadRequest, "request body is required")
		default:
			writeError(w, http.StatusBadRequest, api.CodeBadRequest, "malformed JSON: "+err.Error())
		}
		return false
	}
	if err := api.Validate(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, api.CodeValidation, unwrapMessage(err))
		return false
	}
	return true
}

// pathID parses the named URL parameter as a UUID, writing 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, api.CodeBadRequest, fmt.Sprintf("%s must be a UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

// pathIDs parses both {tripID} and {id}.
func pathIDs(w http.ResponseWriter, r *http.Request) (tripID, id uuid.UUID, ok bool) {
	if tripID, ok = pathID(w, r, "tripID"); !ok {
		return
	}
	id, ok = pathID(w, r, "id")
	return
}
