package domain

import "errors"

var (
	// ErrDataUnavailable is returned when a catalog could not be loaded.
	// Presenters treat the catalog as empty and show a notice instead of failing.
	ErrDataUnavailable = errors.New("catalog data unavailable")

	// ErrSourceNotFound is returned when a catalog source does not exist
	ErrSourceNotFound = errors.New("catalog source not found")

	// ErrSchemaMismatch is returned when a catalog source is missing a required column
	// or holds a value that cannot be parsed for its column
	ErrSchemaMismatch = errors.New("catalog schema mismatch")

	// ErrPlanTypeNotFound is returned when no definition exists for a plan type
	ErrPlanTypeNotFound = errors.New("plan type not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrRemoteFailure is returned when a remote catalog request fails
	ErrRemoteFailure = errors.New("remote catalog request failed")
)
