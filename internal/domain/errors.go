package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrRateUnavailable is returned when the exchange-rate page cannot be reached
// or answers with a non-success status.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrRateUnparsable is returned when the exchange-rate page was fetched but no
// positive numeric rate could be extracted from it.
var ErrRateUnparsable = errors.New("exchange rate unparsable")
