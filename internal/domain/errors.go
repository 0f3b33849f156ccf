package domain

import "errors"

// Sentinel errors for the admissions workflow. Handlers map these to HTTP
// status codes; anything not in this list is treated as a transient failure
// that the caller may retry.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("operation conflicts with current state")
	ErrInvalidChoice   = errors.New("chosen school is not among accepted decisions")
	ErrPaymentRequired = errors.New("payment reference required before enrollment")
	ErrStaleVersion    = errors.New("decision was modified by someone else, refresh and retry")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrRateLimited     = errors.New("too many requests")
)
